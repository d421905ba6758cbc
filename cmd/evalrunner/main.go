// Batch evaluation runner: scores every hypothesis transcript in a texts
// directory against the single ground truth, prints the console report,
// optionally writes a JSON report, and exits nonzero when any transcript
// fails its thresholds (or the run itself aborts). Intended as a CI gate.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"transcription-qa-platform/internal/config"
	"transcription-qa-platform/internal/coreengine/evaluationengine"
	"transcription-qa-platform/internal/jobmanagement"
	"transcription-qa-platform/internal/objectstore"
	"transcription-qa-platform/internal/reporting"
)

func main() {
	textsDir := flag.String("texts", "texts", "directory containing hypothesis transcripts and a 'gt' subfolder with the ground truth")
	reportPath := flag.String("report", "", "optional path for the JSON run report")
	runName := flag.String("name", "", "optional run name")
	objectPrefix := flag.String("object-prefix", "", "optional MinIO prefix to fetch the transcript bundle from (requires MINIO_* env)")
	flag.Parse()

	thresholds := config.LoadThresholds()
	transcriptor := config.LoadTranscriptor()

	if *objectPrefix != "" {
		if err := objectstore.InitMinioClient(); err != nil {
			log.Fatalf("Failed to initialize MinIO client: %v", err)
		}
	}

	service := jobmanagement.NewRunService(thresholds, transcriptor)
	report, err := service.RunEvaluation(context.Background(), jobmanagement.RunOptions{
		RunName:      *runName,
		TextsDir:     *textsDir,
		ObjectPrefix: *objectPrefix,
	})
	if err != nil {
		log.Printf("Evaluation run aborted: %v", err)
		os.Exit(2)
	}

	reporting.WriteConsoleReport(os.Stdout, thresholds, transcriptor, report.Records)

	if *reportPath != "" {
		if err := reporting.WriteJSONReport(*reportPath, report); err != nil {
			log.Printf("Error writing JSON report: %v", err)
			os.Exit(2)
		}
		log.Printf("JSON report written to %s", *reportPath)
	}

	if !evaluationengine.AllPassed(report.Records) {
		os.Exit(1)
	}
}
