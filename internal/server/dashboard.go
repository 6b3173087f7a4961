package server

import (
	_ "embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"StockPulse/internal/cache"
)

//go:embed dashboard.html.tmpl
var dashboardHTML string

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

const timeLayout = "2006-01-02 15:04:05"

type dashboardCard struct {
	Symbol    string
	Price     string
	HasData   bool
	Staleness string
	FetchedAt string
}

type dashboardData struct {
	Now        string
	Cards      []dashboardCard
	TotalCalls int64
	LastCall   string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("dashboard requested", zap.String("remote_ip", remoteIP(r)))

	data := dashboardData{
		Now:   time.Now().Format(timeLayout),
		Cards: make([]dashboardCard, 0, len(s.symbols)),
	}

	for _, symbol := range s.symbols {
		card := dashboardCard{
			Symbol:    symbol,
			Price:     "No data",
			Staleness: "Unknown",
			FetchedAt: "Never fetched",
		}
		if rec, ok := s.cache.Get(symbol); ok {
			card.Price = fmt.Sprintf("$%.2f", rec.Price)
			card.HasData = true
			card.FetchedAt = time.Unix(int64(rec.Timestamp), 0).Format(timeLayout)
			if age, ok := s.cache.Staleness(symbol); ok {
				card.Staleness = cache.FormatStaleness(age)
			}
		}
		data.Cards = append(data.Cards, card)
	}

	total, lastCall, _ := s.stats.Snapshot()
	data.TotalCalls = total
	data.LastCall = "Never"
	if !lastCall.IsZero() {
		data.LastCall = lastCall.Format(timeLayout)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, data); err != nil {
		s.logger.Error("render dashboard", zap.Error(err))
	}
}
