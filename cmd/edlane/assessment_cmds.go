package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/edlane/edlane-lms/internal/assessment"
)

func testsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tests",
		Short: "List the tests available to you",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, client, err := requireSession(cmd)
			if err != nil {
				return err
			}
			s := assessment.NewSession(client, sess.UserID, time.Now)
			if err := s.LoadCatalog(cmd.Context()); err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(s.Catalog()) == 0 {
				fmt.Fprintln(w, "no tests available")
				return nil
			}
			for _, t := range s.Catalog() {
				state := "not attempted"
				switch {
				case t.Corrected:
					state = "graded"
				case t.Completed:
					state = "submitted"
				}
				fmt.Fprintf(w, "%-12s %-30s %2d questions  %3d marks  %s\n",
					t.ID, t.Name, t.QuestionCount, t.TotalMarks, state)
			}
			return nil
		},
	}
}

func takeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "take <test-id>",
		Short: "Take a test interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, err := requireSession(cmd)
			if err != nil {
				return err
			}
			s := assessment.NewSession(client, sess.UserID, time.Now)
			if err := s.LoadCatalog(cmd.Context()); err != nil {
				return err
			}
			var picked *assessment.Test
			for _, t := range s.Catalog() {
				if t.ID == args[0] {
					t := t
					picked = &t
					break
				}
			}
			if picked == nil {
				return fmt.Errorf("test %q is not in your catalog", args[0])
			}
			if picked.Completed {
				return fmt.Errorf("test %q has already been submitted", picked.ID)
			}
			if err := s.SelectTest(cmd.Context(), *picked); err != nil {
				return err
			}
			return runAnswerLoop(cmd, s)
		},
	}
}

// runAnswerLoop drives the answering phase: show the question at the
// cursor, read a command, repeat until the attempt is submitted or
// abandoned. Submission asks for explicit confirmation; declining leaves
// everything as it was.
func runAnswerLoop(cmd *cobra.Command, s *assessment.Session) error {
	in := bufio.NewReader(cmd.InOrStdin())
	w := cmd.OutOrStdout()

	for {
		printQuestion(w, s)
		fmt.Fprint(w, "> ")
		line, err := in.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(w, "\nattempt abandoned, nothing was submitted")
			return nil
		}
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)

		switch {
		case line == "n" || line == "next":
			s.Next()
		case line == "p" || line == "prev":
			s.Previous()
		case line == "q" || line == "quit":
			fmt.Fprintln(w, "attempt abandoned, nothing was submitted")
			return nil
		case line == "s" || line == "submit":
			done, err := trySubmit(cmd, in, s)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		case line == "":
			// re-display
		default:
			if err := recordAnswer(s, line); err != nil {
				fmt.Fprintln(w, err)
			}
		}
	}
}

func printQuestion(w io.Writer, s *assessment.Session) {
	q := s.Current()
	flags := s.AnsweredFlags()
	marks := make([]string, len(flags))
	for i, ok := range flags {
		marks[i] = "."
		if ok {
			marks[i] = "*"
		}
		if i == s.Index() {
			marks[i] = "[" + marks[i] + "]"
		}
	}
	fmt.Fprintf(w, "\n%s  question %d/%d (%d marks)\n", strings.Join(marks, " "), s.Index()+1, len(s.Questions()), q.Marks)
	fmt.Fprintln(w, q.Prompt)
	if q.Kind == assessment.KindMCQ {
		for i, opt := range q.Options {
			fmt.Fprintf(w, "  %d) %s\n", i+1, opt)
		}
		fmt.Fprintln(w, "answer with an option number, or: n(ext) p(rev) s(ubmit) q(uit)")
	} else {
		fmt.Fprintln(w, "type your answer, or: n(ext) p(rev) s(ubmit) q(uit)")
	}
}

// recordAnswer interprets line as the answer to the current question. MCQ
// input is a 1-based option number; anything else is the written text.
func recordAnswer(s *assessment.Session, line string) error {
	q := s.Current()
	value := line
	if q.Kind == assessment.KindMCQ {
		n, err := strconv.Atoi(line)
		if err != nil || n < 1 || n > len(q.Options) {
			return fmt.Errorf("pick an option between 1 and %d", len(q.Options))
		}
		value = q.Options[n-1]
	}
	if err := s.SetAnswer(q.ID, value); err != nil {
		return err
	}
	s.Next()
	return nil
}

// trySubmit enforces the completeness rule, then asks for a yes/no
// confirmation before posting. The bool reports whether the loop is done.
func trySubmit(cmd *cobra.Command, in *bufio.Reader, s *assessment.Session) (bool, error) {
	w := cmd.OutOrStdout()
	if !s.AllAnswered() {
		fmt.Fprintln(w, "answer every question before submitting (* answered, . unanswered)")
		return false, nil
	}
	fmt.Fprint(w, "submit your answers? this cannot be undone [y/N]: ")
	reply, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	if strings.ToLower(strings.TrimSpace(reply)) != "y" {
		fmt.Fprintln(w, "not submitted")
		return false, nil
	}
	if err := s.Submit(cmd.Context()); err != nil {
		fmt.Fprintf(w, "submission failed: %v\nyour answers are kept; type s to retry\n", err)
		return false, nil
	}
	fmt.Fprintln(w, "submitted")
	return true, nil
}

func resultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results <test-id>",
		Short: "Show your graded result for a test",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, client, err := requireSession(cmd)
			if err != nil {
				return err
			}
			s := assessment.NewSession(client, sess.UserID, time.Now)
			rows, summary, err := s.ViewResults(cmd.Context(), assessment.Test{ID: args[0]})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, r := range rows {
				verdict := "wrong"
				if r.IsCorrect {
					verdict = "correct"
				}
				fmt.Fprintf(w, "%2d. [%s, %d marks] %s\n    your answer: %s\n", i+1, verdict, r.Marks, r.Prompt, r.SubmittedAnswer)
				if r.CorrectAnswer != "" && !r.IsCorrect {
					fmt.Fprintf(w, "    correct answer: %s\n", r.CorrectAnswer)
				}
			}
			fmt.Fprintf(w, "\nscore: %d/%d (%s%%)\n", summary.EarnedMarks, summary.TotalMarks, summary.Percent())
			return nil
		},
	}
}

func gradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grade <test-id> <student-id>",
		Short: "Grade a student's submission interactively",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := requireSession(cmd)
			if err != nil {
				return err
			}
			g := assessment.NewGradingSession(client, args[0], args[1])
			if err := g.Load(cmd.Context()); err != nil {
				return err
			}
			return runGradeLoop(cmd, g)
		},
	}
}

func runGradeLoop(cmd *cobra.Command, g *assessment.GradingSession) error {
	in := bufio.NewReader(cmd.InOrStdin())
	w := cmd.OutOrStdout()

	for {
		printGradingRow(w, g)
		fmt.Fprint(w, "> ")
		line, err := in.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(w, "\ngrading abandoned, nothing was finalized")
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(line) {
		case "c", "correct":
			_ = g.SetEvaluation(g.Current().Question.ID, true)
			g.Next()
		case "w", "wrong":
			_ = g.SetEvaluation(g.Current().Question.ID, false)
			g.Next()
		case "n", "next":
			g.Next()
		case "p", "prev":
			g.Previous()
		case "q", "quit":
			fmt.Fprintln(w, "grading abandoned, nothing was finalized")
			return nil
		case "f", "finalize":
			if !g.AllEvaluated() {
				fmt.Fprintln(w, "warning: some answers are unevaluated and will earn no marks")
			}
			if err := g.Finalize(cmd.Context()); err != nil {
				fmt.Fprintf(w, "finalize failed: %v\nevaluations are kept; type f to retry\n", err)
				continue
			}
			fmt.Fprintf(w, "finalized, score %d\n", g.Score())
			return nil
		case "":
			// re-display
		default:
			fmt.Fprintln(w, "commands: c(orrect) w(rong) n(ext) p(rev) f(inalize) q(uit)")
		}
	}
}

func printGradingRow(w io.Writer, g *assessment.GradingSession) {
	a := g.Current()
	state := "unevaluated"
	if correct, ok := g.Evaluation(a.Question.ID); ok {
		state = "wrong"
		if correct {
			state = "correct"
		}
	}
	fmt.Fprintf(w, "\nanswer %d/%d (%d marks, %s)\n", g.Index()+1, len(g.Answers()), a.Question.Marks, state)
	fmt.Fprintln(w, a.Question.Prompt)
	fmt.Fprintf(w, "student answered: %s\n", a.Value)
	fmt.Fprintln(w, "commands: c(orrect) w(rong) n(ext) p(rev) f(inalize) q(uit)")
}
