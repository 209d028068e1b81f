package httpapi

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/robokrystal/stgmonitoradar/internal/domain/match"
	"github.com/robokrystal/stgmonitoradar/internal/usecase"
)

const (
	serverName = "STGRadar"
	oddsSource = "OddsMonitor (oddsmonitor.com.br)"
)

type Handler struct {
	matchService   *usecase.MatchService
	freebetService *usecase.FreebetService
	logger         *slog.Logger
	validator      *validator.Validate
}

func NewHandler(
	matchService *usecase.MatchService,
	freebetService *usecase.FreebetService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		matchService:   matchService,
		freebetService: freebetService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Status")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, statusDTO{
		Servidor:   serverName,
		Status:     "ok",
		CacheAgeS:  cacheAgeSeconds(h.matchService),
		CacheOK:    h.matchService.CacheFresh(),
		TotalJogos: h.matchService.CachedCount(),
	})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	filter := usecase.MatchFilter{
		Competition: r.URL.Query().Get("comp"),
		Search:      r.URL.Query().Get("q"),
	}
	matches := h.matchService.List(ctx, filter)

	writeJSON(ctx, w, http.StatusOK, matchListDTO{
		Status:       "ok",
		Fonte:        oddsSource,
		Total:        len(matches),
		AtualizadoEm: lastRefreshedRFC3339(h.matchService),
		CacheAgeS:    cacheAgeSeconds(h.matchService),
		Jogos:        matchesToDTO(matches),
	})
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	found, err := h.matchService.GetByID(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, matchToDTO(found))
}

func (h *Handler) RefreshCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshCache")
	defer span.End()

	h.matchService.Invalidate()
	matches := h.matchService.List(ctx, usecase.MatchFilter{})

	writeJSON(ctx, w, http.StatusOK, refreshDTO{
		Mensagem:   "cache atualizado",
		TotalJogos: len(matches),
	})
}

type freebetQuery struct {
	Valor float64 `validate:"gt=0"`
	Casa  string
}

func (h *Handler) ListFreebetOpportunities(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFreebetOpportunities")
	defer span.End()

	query := freebetQuery{
		Valor: usecase.DefaultFreebetValue,
		Casa:  strings.TrimSpace(r.URL.Query().Get("casa")),
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("valor")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: valor must be a number", usecase.ErrInvalidInput))
			return
		}
		query.Valor = parsed
	}
	if err := h.validator.Struct(query); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: valor must be greater than zero", usecase.ErrInvalidInput))
		return
	}

	opportunities, err := h.freebetService.List(ctx, query.Valor, query.Casa)
	if err != nil {
		h.logger.WarnContext(ctx, "list freebet opportunities failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, freebetListDTO{
		Status:        "ok",
		ValorFreebet:  query.Valor,
		Total:         len(opportunities),
		Oportunidades: opportunitiesToDTO(opportunities),
	})
}

func cacheAgeSeconds(matches *usecase.MatchService) float64 {
	return matches.CacheAge().Seconds()
}

func lastRefreshedRFC3339(matches *usecase.MatchService) string {
	fetchedAt, ok := matches.LastRefreshed()
	if !ok {
		return ""
	}
	return fetchedAt.Format(time.RFC3339)
}

func matchesToDTO(matches []match.Match) []matchDTO {
	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}
	return items
}
