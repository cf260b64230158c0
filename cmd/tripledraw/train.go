package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/tripledraw/internal/strategy"
	"github.com/lox/tripledraw/internal/tui"
)

// TrainCmd runs the interactive trainer
type TrainCmd struct {
	Seed      int64    `help:"Seed for dealing (0 = random)"`
	Positions []string `help:"Limit training to these positions"`
}

func (cmd *TrainCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	if cmd.Seed != 0 {
		cfg.Trainer.Seed = cmd.Seed
	}
	if len(cmd.Positions) > 0 {
		cfg.Trainer.Positions = cmd.Positions
	}

	// The TUI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(cfg.Trainer.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()
	logger := cfg.NewLogger(logFile, "TRAIN")

	session, err := cfg.Build(logger, quartz.NewReal())
	if err != nil {
		return err
	}

	model := tui.New(session, logger).WithReload(func() (*strategy.Set, error) {
		next, err := g.loadConfig()
		if err != nil {
			return nil, err
		}
		return next.Strategy(logger)
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running trainer: %w", err)
	}
	if err := model.Err(); err != nil {
		return err
	}

	st := session.State()
	fmt.Println(titleStyle.Render(" 2-7 Triple Draw "))
	fmt.Printf("Hands: %d  Correct: %d  Mistakes: %d\n", st.Score.Played, st.Score.Correct, len(st.Mistakes))
	return nil
}
