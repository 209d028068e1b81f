package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /api/status", handler.Status)
}

func registerOddsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /api/jogos/todas-casas", handler.ListMatches)
	mux.HandleFunc("GET /api/jogos/todas-casas/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /api/atualizar", handler.RefreshCache)
	mux.HandleFunc("GET /api/freebets", handler.ListFreebetOpportunities)
}
