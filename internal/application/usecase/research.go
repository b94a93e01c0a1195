package usecase

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"research-agent/internal/application/port/input"
	"research-agent/internal/application/port/output"
	"research-agent/internal/domain/entity"
)

const (
	queryPrompt       = "What can I help you research? "
	researchingBanner = "\n--- Agent is researching ---"
	structuringBanner = "\n--- Structuring Data ---"
	finalBanner       = "\nFINAL STRUCTURED OUTPUT:"
)

// StructureOutcome carries either a structured result or the reason
// structuring failed.
type StructureOutcome struct {
	Result *entity.ResearchResult
	Err    error
}

type ResearchUseCase struct {
	executor   input.ResearchExecutor
	structurer input.Structurer
	logger     output.LoggerPort
}

func NewResearchUseCase(
	executor input.ResearchExecutor,
	structurer input.Structurer,
	logger output.LoggerPort,
) *ResearchUseCase {
	return &ResearchUseCase{
		executor:   executor,
		structurer: structurer,
		logger:     logger,
	}
}

// Run performs one research session: it reads a query from in, runs the
// agent, structures its answer and writes the result to out. A structuring
// failure is reported on out and is not an error.
func (uc *ResearchUseCase) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprint(out, queryPrompt)
	query, err := readLine(in)
	if err != nil {
		return fmt.Errorf("read query: %w", err)
	}
	log := uc.logger.WithFields(map[string]any{"query": query})
	log.Info("Research started")

	fmt.Fprintln(out, researchingBanner)
	res, err := uc.executor.Execute(ctx, query)
	if err != nil {
		return fmt.Errorf("research agent failed: %w", err)
	}
	if res.Stopped {
		log.Warn("Agent stopped before a final answer", "steps", res.Steps)
	}

	fmt.Fprintln(out, structuringBanner)
	outcome := uc.structure(ctx, res)
	if outcome.Err != nil {
		log.Warn("Structuring failed", "error", outcome.Err)
		fmt.Fprintf(out, "Parsing failed. Raw research was: %s\n", res.FinalAnswer)
		fmt.Fprintf(out, "Error: %v\n", outcome.Err)
		return nil
	}

	data, err := json.MarshalIndent(outcome.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(out, finalBanner)
	fmt.Fprintln(out, string(data))

	log.Info("Research completed", "topic", outcome.Result.Topic, "steps", res.Steps)
	return nil
}

func (uc *ResearchUseCase) structure(ctx context.Context, res *input.ExecuteResult) StructureOutcome {
	result, err := uc.structurer.Structure(ctx, res.FinalAnswer, res.ToolsUsed())
	if err != nil {
		return StructureOutcome{Err: err}
	}
	if result == nil {
		return StructureOutcome{Err: errors.New("structurer returned no result")}
	}
	result.Normalize()
	return StructureOutcome{Result: result}
}

// readLine returns the first line of in without its line terminator. EOF
// after a partial line is accepted; EOF before any input yields an empty query.
func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
