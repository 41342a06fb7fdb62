package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/lherron/things2todoist/internal/bridge"
	"github.com/lherron/things2todoist/internal/config"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the export environment is usable",
	Long:  `Checks the configuration, the osascript bridge, and whether Things 3 is reachable.`,
	RunE:  runDoctor,
}

var doctorJSON bool

type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Message string `json:"message,omitempty"`
}

type doctorReport struct {
	Version       string        `json:"version"`
	Checks        []checkResult `json:"checks"`
	Warnings      int           `json:"warnings"`
	Errors        int           `json:"errors"`
	OverallStatus string        `json:"overall_status"`
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "Output JSON")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := &doctorReport{
		Version:       Version,
		Checks:        []checkResult{},
		OverallStatus: "ok",
	}

	cfg, err := config.Load()
	if err != nil {
		report.Checks = append(report.Checks, checkResult{
			Name: "config", Status: "error", Message: err.Error(),
		})
		cfg = &config.Config{Osascript: "osascript"}
	} else {
		report.Checks = append(report.Checks, checkResult{
			Name: "config", Status: "ok", Message: "configuration loaded",
		})
	}

	report.Checks = append(report.Checks, checkPlatform())
	report.Checks = append(report.Checks, checkOsascript(cfg))
	report.Checks = append(report.Checks, checkThingsRunning(cmd, cfg))

	for _, check := range report.Checks {
		switch check.Status {
		case "warning":
			report.Warnings++
		case "error":
			report.Errors++
		}
	}
	if report.Errors > 0 {
		report.OverallStatus = "error"
	} else if report.Warnings > 0 {
		report.OverallStatus = "warning"
	}

	if doctorJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return err
		}
	} else {
		for _, check := range report.Checks {
			marker := "ok"
			if check.Status != "ok" {
				marker = check.Status
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", marker, check.Name, check.Message)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d warning(s), %d error(s)\n", report.Warnings, report.Errors)
	}

	if report.Errors > 0 {
		return fmt.Errorf("doctor found %d error(s)", report.Errors)
	}
	return nil
}

func checkPlatform() checkResult {
	if runtime.GOOS != "darwin" {
		return checkResult{
			Name:    "platform",
			Status:  "warning",
			Message: fmt.Sprintf("AppleScript bridge requires macOS, running on %s", runtime.GOOS),
		}
	}
	return checkResult{Name: "platform", Status: "ok", Message: "macOS"}
}

func checkOsascript(cfg *config.Config) checkResult {
	path, err := exec.LookPath(cfg.Osascript)
	if err != nil {
		return checkResult{
			Name:    "osascript",
			Status:  "error",
			Message: fmt.Sprintf("%s not found on PATH", cfg.Osascript),
		}
	}
	return checkResult{Name: "osascript", Status: "ok", Message: path}
}

func checkThingsRunning(cmd *cobra.Command, cfg *config.Config) checkResult {
	client := bridge.NewClient(newRunner(cfg))
	if err := client.Ping(cmd.Context()); err != nil {
		if errors.Is(err, bridge.ErrAppNotRunning) {
			return checkResult{
				Name:    "things",
				Status:  "error",
				Message: "Things 3 is not running",
			}
		}
		return checkResult{Name: "things", Status: "error", Message: err.Error()}
	}
	return checkResult{Name: "things", Status: "ok", Message: "Things 3 is running"}
}
