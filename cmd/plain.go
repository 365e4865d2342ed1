package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/report"
	"github.com/abhisek/prepcoach/internal/wizard"
)

var plainCmd = &cobra.Command{
	Use:   "plain",
	Short: "Run the wizard line by line without the full-screen UI",
	Long: `Walk through analysis, study plan, practice and evaluation using plain
prompts on stdin and stdout. Useful for terminals that cannot host the TUI.

Multi-line input (job description, answers) ends with an empty line.
Answers are read from stdin, so --job-file - is not accepted here.`,
	RunE: runPlain,
}

// errPlainStdin rejects a description on stdin, which the session needs
// for answers.
var errPlainStdin = errors.New("plain reads answers from stdin; pass the job description with --job-file PATH or --job-url")

func checkPlainSource(jobFile string) error {
	if jobFile == "-" {
		return errPlainStdin
	}
	return nil
}

func runPlain(cmd *cobra.Command, args []string) error {
	jobFile, _ := cmd.Flags().GetString("job-file")
	if err := checkPlainSource(jobFile); err != nil {
		return err
	}

	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = e.Close() }()

	desc, err := loadDescription(cmd, e)
	if err != nil {
		return err
	}

	s := &plainSession{
		ctx: cmd.Context(),
		w:   wizard.New(e.service, wizard.WithLogger(e.logger)),
		in:  bufio.NewScanner(os.Stdin),
		out: cmd.OutOrStdout(),
	}
	s.in.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return s.run(desc)
}

// errInputClosed ends the session when stdin runs out.
var errInputClosed = errors.New("input closed")

type plainSession struct {
	ctx context.Context
	w   *wizard.Wizard
	in  *bufio.Scanner
	out io.Writer
}

func (s *plainSession) run(preloaded string) error {
	for {
		err := s.analyze(preloaded)
		preloaded = ""
		if errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		restart, err := s.planLoop()
		if errors.Is(err, errInputClosed) {
			return nil
		}
		if err != nil || !restart {
			return err
		}
		s.w.Reset()
		fmt.Fprintln(s.out, "\n── Starting over ──")
	}
}

// analyze collects a description, analyzes it and generates the plan.
func (s *plainSession) analyze(preloaded string) error {
	for {
		desc := preloaded
		preloaded = ""
		if desc == "" {
			fmt.Fprintf(s.out, "Paste the job description (at least %d characters), then an empty line:\n", wizard.MinDescriptionLength)
			var err error
			if desc, err = s.readBlock(); err != nil {
				return err
			}
		}

		s.w.SetJobDescription(desc)
		fmt.Fprintln(s.out, "Analyzing...")
		err := s.w.AnalyzeJob(s.ctx)
		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(s.out, verr.Message)
			continue
		}
		if err != nil {
			return s.failed(err)
		}
		break
	}

	st := s.w.State()
	fmt.Fprintln(s.out)
	if err := report.WriteAnalysis(s.out, st.JobAnalysis); err != nil {
		return err
	}

	fmt.Fprint(s.out, "Press Enter to generate your study plan...")
	if _, err := s.readLine(); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "Generating...")
	if err := s.w.GenerateStudyPlan(s.ctx); err != nil {
		return s.failed(err)
	}
	fmt.Fprintln(s.out)
	return report.WritePlan(s.out, s.w.State().StudyPlan)
}

// planLoop lets the user pick topics until they quit or start over.
func (s *plainSession) planLoop() (restart bool, err error) {
	for {
		plan := s.w.State().StudyPlan
		fmt.Fprintf(s.out, "Pick a topic to practice [1-%d], r to start over, q to quit: ", len(plan.Topics))
		line, err := s.readLine()
		if err != nil {
			return false, err
		}
		switch line {
		case "q", "quit":
			return false, nil
		case "r":
			return true, nil
		}
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(plan.Topics) {
			fmt.Fprintln(s.out, "Not a topic number.")
			continue
		}

		topic := plan.Topics[n-1].Topic
		fmt.Fprintf(s.out, "Generating questions for %s...\n", topic)
		if err := s.w.GenerateQuestions(s.ctx, topic); err != nil {
			fmt.Fprintln(s.out, s.message(err))
			continue
		}
		if err := s.practice(); err != nil {
			return false, err
		}
		_ = s.w.BackToPlan()
	}
}

// practice answers questions until the last one or the user goes back.
func (s *plainSession) practice() error {
	for {
		st := s.w.State()
		q, ok := st.CurrentQuestion()
		if !ok {
			return nil
		}
		fmt.Fprintln(s.out)
		if err := report.WriteQuestion(s.out, q, st.CurrentQuestionIndex+1, len(st.Questions)); err != nil {
			return err
		}

		if err := s.answer(); err != nil {
			return err
		}
		if err := report.WriteEvaluation(s.out, s.w.State().Evaluation); err != nil {
			return err
		}

		if !s.w.State().HasNextQuestion() {
			fmt.Fprintln(s.out, "That was the last question. Back to the study plan.")
			return nil
		}
		fmt.Fprint(s.out, "Enter for the next question, p for the study plan: ")
		line, err := s.readLine()
		if err != nil {
			return err
		}
		if line == "p" {
			return nil
		}
		s.w.NextQuestion()
	}
}

func (s *plainSession) answer() error {
	for {
		fmt.Fprintf(s.out, "Your answer (at least %d characters), then an empty line:\n", wizard.MinAnswerLength)
		text, err := s.readBlock()
		if err != nil {
			return err
		}
		s.w.SetUserAnswer(text)
		fmt.Fprintln(s.out, "Evaluating...")
		if err := s.w.EvaluateAnswer(s.ctx); err != nil {
			fmt.Fprintln(s.out, s.message(err))
			continue
		}
		fmt.Fprintln(s.out)
		return nil
	}
}

// message is the user-facing text for a failed operation.
func (s *plainSession) message(err error) string {
	if msg := s.w.State().Error; msg != "" {
		return msg
	}
	return err.Error()
}

func (s *plainSession) failed(err error) error {
	return fmt.Errorf("%s: %w", s.message(err), err)
}

func (s *plainSession) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// readBlock reads lines until an empty line or EOF.
func (s *plainSession) readBlock() (string, error) {
	var lines []string
	for s.in.Scan() {
		line := s.in.Text()
		if strings.TrimSpace(line) == "" {
			if len(lines) == 0 {
				continue
			}
			break
		}
		lines = append(lines, line)
	}
	if err := s.in.Err(); err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", errInputClosed
	}
	return strings.Join(lines, "\n"), nil
}
