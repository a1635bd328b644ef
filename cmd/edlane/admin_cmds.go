package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edlane/edlane-lms/internal/roster"
	"github.com/edlane/edlane-lms/internal/schedule"
)

func batchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "List batches, filtered client-side",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, err := requireSession(cmd)
			if err != nil {
				return err
			}
			v := viperForCmd(cmd)
			f := roster.Filter{
				Query:       v.GetString("query"),
				CourseID:    v.GetString("course"),
				TrainerID:   v.GetString("trainer"),
				Status:      v.GetString("status"),
				StartsAfter: v.GetString("starts-after"),
				EndsBefore:  v.GetString("ends-before"),
			}
			batches, err := client.ListBatches(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			matched := roster.Apply(batches, f)
			if len(matched) == 0 {
				fmt.Fprintln(w, "no batches match")
				return nil
			}
			for _, b := range matched {
				fmt.Fprintf(w, "%-12s %-24s course=%-10s trainer=%-10s %-9s %s..%s  %d students\n",
					b.ID, b.Name, b.CourseID, b.TrainerID, b.Status, b.StartDate, b.EndDate, b.StudentCount)
			}
			return nil
		},
	}
	cmd.Flags().String("query", "", "substring of the batch name, case-insensitive")
	cmd.Flags().String("course", "", "course ID")
	cmd.Flags().String("trainer", "", "trainer ID")
	cmd.Flags().String("status", "", "upcoming | active | completed")
	cmd.Flags().String("starts-after", "", "keep batches starting on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("ends-before", "", "keep batches ending on or before this date (YYYY-MM-DD)")
	return cmd
}

func studentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "students <batch-id>",
		Short: "List the students enrolled in a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := requireSession(cmd)
			if err != nil {
				return err
			}
			students, err := client.ListBatchStudents(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(students) == 0 {
				fmt.Fprintln(w, "no students enrolled")
				return nil
			}
			for _, s := range students {
				fmt.Fprintf(w, "%-12s %-24s %s\n", s.ID, s.Name, s.Email)
			}
			return nil
		},
	}
}

func trainersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trainers",
		Short: "List trainers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, client, err := requireSession(cmd)
			if err != nil {
				return err
			}
			trainers, err := client.ListTrainers(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, t := range trainers {
				fmt.Fprintf(w, "%-12s %-24s %-28s %s\n", t.ID, t.Name, t.Email, t.Expertise)
			}
			return nil
		},
	}
}

func attendanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attendance <batch-id>",
		Short: "Show or record attendance for a batch session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := requireSession(cmd)
			if err != nil {
				return err
			}
			v := viperForCmd(cmd)
			date := v.GetString("date")
			if date == "" {
				return fmt.Errorf("--date is required (YYYY-MM-DD)")
			}
			sheet, err := client.GetAttendance(cmd.Context(), args[0], date)
			if err != nil {
				return err
			}

			present := v.GetStringSlice("present")
			if len(present) > 0 {
				marked := make(map[string]bool, len(present))
				for _, id := range present {
					marked[id] = true
				}
				for i := range sheet.Entries {
					sheet.Entries[i].Present = marked[sheet.Entries[i].StudentID]
				}
				if err := client.SaveAttendance(cmd.Context(), sheet); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			for _, e := range sheet.Entries {
				mark := "absent "
				if e.Present {
					mark = "present"
				}
				fmt.Fprintf(w, "%s %-12s %s\n", mark, e.StudentID, e.Name)
			}
			fmt.Fprintf(w, "%d/%d present on %s\n", sheet.PresentCount(), len(sheet.Entries), sheet.Date)
			return nil
		},
	}
	cmd.Flags().String("date", "", "session date (YYYY-MM-DD)")
	cmd.Flags().StringSlice("present", nil, "student IDs to mark present; everyone else is marked absent")
	return cmd
}

func webinarsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webinars <batch-id>",
		Short: "List, schedule, or cancel webinars for a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := requireSession(cmd)
			if err != nil {
				return err
			}
			v := viperForCmd(cmd)
			w := cmd.OutOrStdout()

			if id := v.GetString("cancel"); id != "" {
				if err := client.CancelWebinar(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(w, "cancelled %s\n", id)
			}
			if title := v.GetString("schedule"); title != "" {
				created, err := client.ScheduleWebinar(cmd.Context(), schedule.Webinar{
					BatchID:     args[0],
					Title:       title,
					StartsAt:    v.GetString("at"),
					DurationMin: v.GetInt("duration"),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "scheduled %s\n", created.ID)
			}

			webinars, err := client.ListWebinars(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(webinars) == 0 {
				fmt.Fprintln(w, "no webinars")
				return nil
			}
			for _, wb := range webinars {
				fmt.Fprintf(w, "%-12s %-28s %s  %3d min  %-10s %s\n",
					wb.ID, wb.Title, wb.StartsAt, wb.DurationMin, wb.Status, wb.JoinURL)
			}
			return nil
		},
	}
	cmd.Flags().String("schedule", "", "title of a new webinar to schedule")
	cmd.Flags().String("at", "", "start time for --schedule (RFC 3339)")
	cmd.Flags().Int("duration", 60, "duration in minutes for --schedule")
	cmd.Flags().String("cancel", "", "webinar ID to cancel")
	return cmd
}

func contentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content <course-id>",
		Short: "Show course content: syllabus, topics, or exercises",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := requireSession(cmd)
			if err != nil {
				return err
			}
			v := viperForCmd(cmd)
			w := cmd.OutOrStdout()

			switch tab := v.GetString("tab"); tab {
			case "syllabus":
				units, err := client.GetSyllabus(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				for _, u := range units {
					fmt.Fprintf(w, "%2d. %s\n", u.Position, u.Title)
					if u.Summary != "" {
						fmt.Fprintf(w, "    %s\n", u.Summary)
					}
				}
			case "topics":
				topics, err := client.GetTopics(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				for _, t := range topics {
					fmt.Fprintf(w, "%2d. %s\n", t.Position, t.Title)
					if t.Body != "" {
						fmt.Fprintf(w, "    %s\n", t.Body)
					}
				}
			case "exercises":
				exercises, err := client.GetExercises(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				for _, e := range exercises {
					fmt.Fprintf(w, "%2d. %s\n    %s\n", e.Position, e.Title, e.Prompt)
				}
			default:
				return fmt.Errorf("unknown --tab %q: want syllabus, topics, or exercises", tab)
			}
			return nil
		},
	}
	cmd.Flags().String("tab", "syllabus", "syllabus | topics | exercises")
	return cmd
}
