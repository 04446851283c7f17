package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"chart-signal/internal/domain"
	"chart-signal/internal/recommend"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type chartAnalyzer interface {
	AnalyzeBytes(ctx context.Context, raw []byte) (*domain.Report, error)
}

type tools struct {
	analyzer chartAnalyzer
	readFile func(name string) ([]byte, error)
}

type classifyChartInput struct {
	Path string `json:"path" jsonschema:"absolute path to a png, jpeg or gif chart image"`
}

type modelLabel struct {
	Slot       int     `json:"slot"`
	ModelID    string  `json:"model_id"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type classifyChartOutput struct {
	ReportID       string       `json:"report_id"`
	Digest         string       `json:"digest"`
	Models         []modelLabel `json:"models"`
	Score          int          `json:"score"`
	Recommendation string       `json:"recommendation"`
}

type aggregateLabelsInput struct {
	Labels []string `json:"labels" jsonschema:"exactly four labels in model slot order; a label may hold several comma separated tags"`
}

type aggregateLabelsOutput struct {
	Score          int    `json:"score"`
	Recommendation string `json:"recommendation"`
}

func (t *tools) classifyChart(ctx context.Context, req *mcp.CallToolRequest, in classifyChartInput) (*mcp.CallToolResult, classifyChartOutput, error) {
	path := strings.TrimSpace(in.Path)
	if path == "" {
		return nil, classifyChartOutput{}, errors.New("path is required")
	}
	raw, err := t.readFile(path)
	if err != nil {
		return nil, classifyChartOutput{}, fmt.Errorf("read %s: %w", path, err)
	}

	report, err := t.analyzer.AnalyzeBytes(ctx, raw)
	if err != nil {
		return nil, classifyChartOutput{}, err
	}

	out := classifyChartOutput{
		ReportID:       report.ID,
		Digest:         report.Digest,
		Models:         make([]modelLabel, len(report.Results)),
		Score:          report.Score,
		Recommendation: string(report.Recommendation),
	}
	for i, res := range report.Results {
		out.Models[i] = modelLabel{
			Slot:       res.Slot,
			ModelID:    res.ModelID,
			Label:      res.Label,
			Confidence: res.Probabilities[res.Label],
		}
	}
	return nil, out, nil
}

func (t *tools) aggregateLabels(ctx context.Context, req *mcp.CallToolRequest, in aggregateLabelsInput) (*mcp.CallToolResult, aggregateLabelsOutput, error) {
	if len(in.Labels) != domain.ModelCount {
		return nil, aggregateLabelsOutput{}, fmt.Errorf("expected %d labels, got %d", domain.ModelCount, len(in.Labels))
	}
	eval := recommend.Evaluate(in.Labels)
	return nil, aggregateLabelsOutput{Score: eval.Score, Recommendation: string(eval.Recommendation)}, nil
}
