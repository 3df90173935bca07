package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/matchmaker/internal/logger"
	"github.com/spigell/matchmaker/internal/utils"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the source and report the schema and values that could not be normalized",
	Run: func(cmd *cobra.Command, _ []string) {
		check(cmd)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolP("list", "l", false, "list every value treated as absent")
	checkCmd.Flags().StringP("record", "r", "", "list the values treated as absent for a single record id")
}

func check(cmd *cobra.Command) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	s, err := openSession(config, logger)
	if err != nil {
		logger.Fatal("checking the source", zap.Error(err))
	}

	pretty, _ := json.MarshalIndent(s.Summary(), "", "  ")
	s.Logger().Info(fmt.Sprintf("source summary: \n %s", pretty))

	diagnostics := s.Diagnostics
	if record, _ := cmd.Flags().GetString("record"); strings.TrimSpace(record) != "" {
		diagnostics = diagnostics.ForRecord(strings.TrimSpace(record))
		s.Logger().Info("record diagnostics", zap.String("record", record), zap.Int("count", len(diagnostics)))
	} else if list, _ := cmd.Flags().GetBool("list"); !list {
		return
	}

	for _, diag := range diagnostics {
		s.Logger().Info("value treated as absent",
			zap.String("record", diag.RecordID),
			zap.String("field", diag.Field),
			zap.String("reason", diag.Reason),
			zap.String("raw", utils.TruncateForLog(diag.Raw, 80)),
		)
	}
}
