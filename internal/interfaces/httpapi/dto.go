package httpapi

import (
	"github.com/robokrystal/stgmonitoradar/internal/domain/match"
	"github.com/robokrystal/stgmonitoradar/internal/usecase"
)

type statusDTO struct {
	Servidor   string  `json:"servidor"`
	Status     string  `json:"status"`
	CacheAgeS  float64 `json:"cache_age_s"`
	CacheOK    bool    `json:"cache_ok"`
	TotalJogos int     `json:"total_jogos"`
}

type refreshDTO struct {
	Mensagem   string `json:"mensagem"`
	TotalJogos int    `json:"total_jogos"`
}

type matchListDTO struct {
	Status       string     `json:"status"`
	Fonte        string     `json:"fonte"`
	Total        int        `json:"total"`
	AtualizadoEm string     `json:"atualizado_em"`
	CacheAgeS    float64    `json:"cache_age_s"`
	Jogos        []matchDTO `json:"jogos"`
}

type matchDTO struct {
	ID            string      `json:"id"`
	Partida       string      `json:"partida"`
	TimeCasa      string      `json:"time_casa"`
	TimeVisitante string      `json:"time_visitante"`
	Competicao    string      `json:"competicao"`
	Data          string      `json:"data"`
	Hora          string      `json:"hora"`
	TotalCasas    int         `json:"total_casas"`
	Best          bestOddsDTO `json:"best"`
	Casas         []quoteDTO  `json:"casas"`
}

type bestOddsDTO struct {
	Casa      oddsSlotDTO `json:"casa"`
	Empate    oddsSlotDTO `json:"empate"`
	Visitante oddsSlotDTO `json:"visitante"`
}

type oddsSlotDTO struct {
	Odd        float64  `json:"odd"`
	Bookmakers []string `json:"bookmakers"`
}

type quoteDTO struct {
	Bookmaker    string  `json:"bookmaker"`
	NomeDisplay  string  `json:"nome_display"`
	Odd1         float64 `json:"odd1"`
	OddX         float64 `json:"oddX"`
	Odd2         float64 `json:"odd2"`
	IsBest1      bool    `json:"isBest1"`
	IsBestX      bool    `json:"isBestX"`
	IsBest2      bool    `json:"isBest2"`
	Href         string  `json:"href"`
	AtualizadoEm string  `json:"atualizado_em"`
}

type freebetListDTO struct {
	Status        string                  `json:"status"`
	ValorFreebet  float64                 `json:"valor_freebet"`
	Total         int                     `json:"total"`
	Oportunidades []freebetOpportunityDTO `json:"oportunidades"`
}

type freebetOpportunityDTO struct {
	ID               string            `json:"id"`
	Partida          string            `json:"partida"`
	Competicao       string            `json:"competicao"`
	Data             string            `json:"data"`
	Hora             string            `json:"hora"`
	Odds             freebetOddsDTO    `json:"odds"`
	ValorFreebet     float64           `json:"valor_freebet"`
	ApostasSugeridas *freebetStakesDTO `json:"apostas_sugeridas,omitempty"`
	TotalInvestido   float64           `json:"total_investido"`
	LucroGarantido   float64           `json:"lucro_garantido"`
	ROIPct           float64           `json:"roi_pct"`
}

type freebetOddsDTO struct {
	Casa      float64 `json:"casa"`
	Empate    float64 `json:"empate"`
	Visitante float64 `json:"visitante"`
}

type freebetStakesDTO struct {
	Casa             float64 `json:"casa"`
	Empate           float64 `json:"empate"`
	VisitanteFreebet float64 `json:"visitante_freebet"`
}

func matchToDTO(m match.Match) matchDTO {
	quotes := make([]quoteDTO, 0, len(m.Quotes))
	for _, q := range m.Quotes {
		quotes = append(quotes, quoteDTO{
			Bookmaker:    q.Bookmaker,
			NomeDisplay:  q.DisplayName,
			Odd1:         q.HomeOdd,
			OddX:         q.DrawOdd,
			Odd2:         q.AwayOdd,
			IsBest1:      q.BestHome,
			IsBestX:      q.BestDraw,
			IsBest2:      q.BestAway,
			Href:         q.Link,
			AtualizadoEm: q.UpdatedAt,
		})
	}

	return matchDTO{
		ID:            m.ID,
		Partida:       m.Label(),
		TimeCasa:      m.HomeTeam,
		TimeVisitante: m.AwayTeam,
		Competicao:    m.Competition,
		Data:          m.Date,
		Hora:          m.Kickoff,
		TotalCasas:    len(m.Quotes),
		Best: bestOddsDTO{
			Casa:      oddsSlotToDTO(m.Best.Home),
			Empate:    oddsSlotToDTO(m.Best.Draw),
			Visitante: oddsSlotToDTO(m.Best.Away),
		},
		Casas: quotes,
	}
}

func oddsSlotToDTO(slot match.OddsSlot) oddsSlotDTO {
	bookmakers := slot.Bookmakers
	if bookmakers == nil {
		bookmakers = []string{}
	}
	return oddsSlotDTO{Odd: slot.Odd, Bookmakers: bookmakers}
}

func opportunitiesToDTO(opportunities []usecase.FreebetOpportunity) []freebetOpportunityDTO {
	items := make([]freebetOpportunityDTO, 0, len(opportunities))
	for _, o := range opportunities {
		item := freebetOpportunityDTO{
			ID:         o.Match.ID,
			Partida:    o.Match.Label(),
			Competicao: o.Match.Competition,
			Data:       o.Match.Date,
			Hora:       o.Match.Kickoff,
			Odds: freebetOddsDTO{
				Casa:      o.Match.Best.Home.Odd,
				Empate:    o.Match.Best.Draw.Odd,
				Visitante: o.Match.Best.Away.Odd,
			},
			ValorFreebet: o.FreebetValue,
		}
		if o.Allocation != nil {
			item.ApostasSugeridas = &freebetStakesDTO{
				Casa:             o.Allocation.StakeHome,
				Empate:           o.Allocation.StakeDraw,
				VisitanteFreebet: o.Allocation.StakeAway,
			}
			item.TotalInvestido = o.Allocation.TotalStaked
			item.LucroGarantido = o.Allocation.Profit
			item.ROIPct = o.Allocation.ROIPercent
		}
		items = append(items, item)
	}
	return items
}
