package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"chart-signal/internal/chart"
	"chart-signal/internal/domain"
	"chart-signal/internal/orchestrator"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"
)

const analyzeTimeout = 2 * time.Minute

// PhotoAnalyzer is the part of the classification service the bot needs.
type PhotoAnalyzer interface {
	AnalyzeBytes(ctx context.Context, raw []byte) (*domain.Report, error)
	Models() []domain.ModelSlot
}

func StartTelegramBot(token string, analyzer PhotoAnalyzer) {
	if token == "" {
		log.Info().Msg("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create Telegram bot")
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/start", func(c tele.Context) error {
		return c.Send("Send me a chart screenshot and I will classify it with four models.")
	})

	b.Handle("/models", func(c tele.Context) error {
		return c.Send(formatModels(analyzer.Models()))
	})

	b.Handle(tele.OnPhoto, func(c tele.Context) error {
		photo := c.Message().Photo
		if photo == nil {
			return c.Send("No photo found in message.")
		}
		rc, err := b.File(&photo.File)
		if err != nil {
			log.Warn().Err(err).Str("file_id", photo.FileID).Msg("telegram photo download failed")
			return c.Send("Could not download the photo, please try again.")
		}
		defer rc.Close()

		raw, err := io.ReadAll(rc)
		if err != nil {
			return c.Send("Could not read the photo, please try again.")
		}

		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()
		report, err := analyzer.AnalyzeBytes(ctx, raw)
		return c.Send(replyFor(report, err))
	})

	log.Info().Msg("Telegram bot started")
	go b.Start()
}

func replyFor(report *domain.Report, err error) string {
	switch {
	case errors.Is(err, orchestrator.ErrBusy):
		return "Busy classifying another chart, try again in a moment."
	case errors.Is(err, chart.ErrUnsupportedImage), errors.Is(err, orchestrator.ErrNoImage):
		return "That image could not be decoded."
	case err != nil:
		log.Error().Err(err).Msg("telegram chart analysis failed")
		return fmt.Sprintf("Error analyzing chart: %v", err)
	}
	return formatReport(report)
}

func formatModels(slots []domain.ModelSlot) string {
	var sb strings.Builder
	sb.WriteString("Models")
	for _, s := range slots {
		fmt.Fprintf(&sb, "\n%d. %s", s.Slot, s.ModelID)
	}
	return sb.String()
}

func formatReport(report *domain.Report) string {
	if report == nil {
		return "No result."
	}
	var sb strings.Builder
	for _, res := range report.Results {
		if res.Label == "" {
			fmt.Fprintf(&sb, "%d. %s: no pattern\n", res.Slot, res.ModelID)
			continue
		}
		fmt.Fprintf(&sb, "%d. %s: %s (%.2f%%)\n", res.Slot, res.ModelID, res.Label, res.Probabilities[res.Label]*100)
	}
	fmt.Fprintf(&sb, "Recommendation: %s (score %+d)", report.Recommendation, report.Score)
	return sb.String()
}
