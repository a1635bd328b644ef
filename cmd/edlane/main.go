// edlane is a terminal front end for the LMS backend: course content,
// batch and attendance administration, webinars, and the assessment
// workflow (taking tests, viewing results, grading).
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/edlane/edlane-lms/internal/api"
	"github.com/edlane/edlane-lms/internal/authstate"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "edlane",
		Short:         "LMS terminal client",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("base-url", "http://localhost:8080", "LMS API base URL")

	root.AddCommand(
		loginCmd(), logoutCmd(), whoamiCmd(),
		testsCmd(), takeCmd(), resultsCmd(), gradeCmd(),
		batchesCmd(), studentsCmd(), trainersCmd(),
		attendanceCmd(), webinarsCmd(), contentCmd(),
	)
	return root
}

// viperForCmd binds the command's flags and the environment to a fresh
// viper instance, layering in an optional config file.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())
	_ = v.BindPFlags(cmd.Root().PersistentFlags())

	v.SetEnvPrefix("EDLANE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("edlane")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/edlane")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("config file: %v", err)
		}
	}
	return v
}

// requireSession loads the persisted identity and builds an authenticated
// client from it.
func requireSession(cmd *cobra.Command) (authstate.Session, *api.Client, error) {
	v := viperForCmd(cmd)
	path, err := authstate.DefaultPath()
	if err != nil {
		return authstate.Session{}, nil, err
	}
	sess, err := authstate.Load(path)
	if err != nil {
		return authstate.Session{}, nil, fmt.Errorf("run `edlane login` first: %w", err)
	}
	if sess.Expired(time.Now()) {
		return authstate.Session{}, nil, fmt.Errorf("session expired, run `edlane login` again")
	}
	return sess, api.NewClient(v.GetString("base-url"), sess.Token), nil
}
