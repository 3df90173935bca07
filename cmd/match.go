package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/matchmaker/internal/export"
	"github.com/spigell/matchmaker/internal/logger"
	"github.com/spigell/matchmaker/internal/matching"
	"github.com/spigell/matchmaker/internal/profile"
	"github.com/spigell/matchmaker/internal/session"
)

const (
	PromptExport        = "Export matches"
	PromptReportByCity  = "Report by city"
	PromptMatchesToFile = "Dump matches to file"
	PromptAnother       = "Match another profile"
	PromptExit          = "Exit"
)

var errExit = errors.New("exit requested")

var actionPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptExport, PromptReportByCity, PromptMatchesToFile, PromptAnother, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Find compatible profiles for one or all profiles of the source",
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("id", "i", "", "id of the profile to match (default is to choose interactively)")
	matchCmd.Flags().BoolP("all", "a", false, "match every profile and export all non-empty results")
	matchCmd.Flags().IntP("flex", "k", -1, "number of conditions a candidate may fail; negative means strict")
	matchCmd.Flags().StringP("out", "o", "", "a directory for exported files (default is matches)")
	matchCmd.Flags().StringP("format", "f", "", "export format: csv, xlsx or json (default is csv)")
	matchCmd.Flags().BoolP("yes", "y", false, "do not ask what to do with the result, just export it")

	viper.BindPFlag("matching.flexibility", matchCmd.Flags().Lookup("flex"))
	viper.BindPFlag("output-dir", matchCmd.Flags().Lookup("out"))
	viper.BindPFlag("export-format", matchCmd.Flags().Lookup("format"))
}

// match is the main command for the cli.
func match(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the matchmaker", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	format, err := export.ParseFormat(config.ExportFormat)
	if err != nil {
		logger.Fatal("parsing export format", zap.Error(err))
	}

	s, err := openSession(config, logger)
	if err != nil {
		logger.Fatal("loading profiles", zap.Error(err))
	}

	logger = s.Logger()

	if s.Cohorts.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no profiles with a recognized gender"))
		return
	}

	if all, _ := cmd.Flags().GetBool("all"); all {
		if err := exportAll(s, config.OutputDir, format, logger); err != nil {
			logger.Fatal("exporting matches", zap.Error(err))
		}
		return
	}

	autoExport, _ := cmd.Flags().GetBool("yes")
	id, _ := cmd.Flags().GetString("id")

	for {
		if id == "" {
			id, err = chooseProfile(s)
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		result, err := s.Query(id)
		if err != nil {
			if errors.Is(err, session.ErrProfileNotFound) {
				logger.Fatal("profile with given id not found",
					zap.String("id", id),
					zap.Int("female", s.Cohorts.Female.Len()),
					zap.Int("male", s.Cohorts.Male.Len()),
				)
			}
			logger.Fatal("matching", zap.Error(err))
		}

		logger.Info("current list of matches",
			zap.String("id", result.Query.ID),
			zap.String("name", result.Query.Name),
			zap.Int("count", result.Len()),
		)

		if autoExport {
			if err := handleAction(PromptExport, logger, config, format, result); err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
			return
		}

		for {
			_, action, err := actionPrompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
			if action == PromptAnother {
				break
			}

			if err := handleAction(action, logger, config, format, result); err != nil {
				if errors.Is(err, errExit) {
					return
				}
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		id = ""
	}
}

func handleAction(action string, logger *zap.Logger, config *Config, format export.Format, result *matching.Result) error {
	switch action {
	case PromptExport:
		path, err := export.Write(result, config.OutputDir, format)
		if err != nil {
			return fmt.Errorf("export matches: %w", err)
		}
		logger.Info("exported matches", zap.String("filename", path), zap.Int("count", result.Len()))
		return nil
	case PromptReportByCity:
		pretty, _ := json.MarshalIndent(result.ReportByCity(), "", "  ")
		logger.Info(string(pretty), zap.Int("matches count", result.Len()))
		return nil
	case PromptMatchesToFile:
		filename, err := export.DumpToTmpFile([]*matching.Result{result})
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func exportAll(s *session.Session, dir string, format export.Format, logger *zap.Logger) error {
	results := s.QueryAll()
	for _, result := range results {
		path, err := export.Write(result, dir, format)
		if err != nil {
			return err
		}
		logger.Debug("exported matches",
			zap.String("id", result.Query.ID),
			zap.String("filename", path),
			zap.Int("count", result.Len()),
		)
	}

	logger.Info("exported all matches", zap.Int("files", len(results)), zap.String("dir", dir))
	return nil
}

// chooseProfile asks for a query profile among both cohorts and returns its id.
func chooseProfile(s *session.Session) (string, error) {
	profiles := s.Cohorts.All()
	items := make([]string, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, profileLabel(p))
	}

	profilePrompt := promptui.Select{
		Label: "Choose a profile and press ENTER",
		Items: items,
		Size:  15,
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(strings.TrimSpace(input)))
		},
	}

	idx, _, err := profilePrompt.Run()
	if err != nil {
		return "", err
	}

	return profiles[idx].ID, nil
}

func profileLabel(p *profile.Profile) string {
	return fmt.Sprintf("%s %s / %s / %s / %s", p.ID, p.Name, p.Gender, p.Age.String(), p.Display.City)
}
