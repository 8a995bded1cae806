package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/fetch"
	"github.com/jonathan/skill-matcher/internal/ingestion"
	"github.com/jonathan/skill-matcher/internal/observability"
	"github.com/jonathan/skill-matcher/internal/parsing"
	"github.com/jonathan/skill-matcher/internal/schemas"
)

// Output file names written by extract
const (
	profileFile  = "profile.json"
	metadataFile = "profile.meta.json"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured profile from a resume",
	Long: `Extract skills, education, experience and contact details from a resume document.

The resume is read from a local file, an http(s) URL or an s3://bucket/key location.
PDF, DOCX, HTML and plain text are supported.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runExtract(cmd.Context(), cmd.OutOrStdout(), extractOpts)
	},
}

type extractOptions struct {
	File  string
	URL   string
	S3URI string
	Out   string
}

var extractOpts extractOptions

func init() {
	extractCmd.Flags().StringVarP(&extractOpts.File, "file", "f", "", "Path to a resume file")
	extractCmd.Flags().StringVarP(&extractOpts.URL, "url", "u", "", "URL to fetch the resume from")
	extractCmd.Flags().StringVar(&extractOpts.S3URI, "s3", "", "s3://bucket/key location of the resume")
	extractCmd.Flags().StringVarP(&extractOpts.Out, "out", "o", "", "Output directory (required)")
	_ = extractCmd.MarkFlagRequired("out")
	extractCmd.MarkFlagsMutuallyExclusive("file", "url", "s3")
	extractCmd.MarkFlagsOneRequired("file", "url", "s3")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(ctx context.Context, out io.Writer, opts extractOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	doc, err := loadDocument(ctx, opts)
	if err != nil {
		return err
	}

	extractor, err := parsing.NewDefaultExtractor()
	if err != nil {
		return err
	}

	converted, err := ingestion.Convert(doc.Data, doc.Filename, doc.ContentType)
	if err != nil {
		return &parsing.ExtractionError{Source: doc.Source, Cause: err}
	}
	profile := extractor.Extract(converted.Text, converted.PageCount)

	if err := validateOutput(schemas.ExtractedProfile, profile); err != nil {
		return err
	}

	profilePath := filepath.Join(opts.Out, profileFile)
	if err := writeJSON(profilePath, profile); err != nil {
		return err
	}
	metaPath := filepath.Join(opts.Out, metadataFile)
	if err := writeJSON(metaPath, ingestion.NewMetadata(doc.Data, doc.Source, converted)); err != nil {
		return err
	}

	if verbose {
		observability.NewPrinter(out).PrintProfile(profile)
	}
	fmt.Fprintf(out, "Extracted %d skills from %s\n", len(profile.Skills), doc.Source)
	fmt.Fprintf(out, "Profile: %s\n", profilePath)
	fmt.Fprintf(out, "Metadata: %s\n", metaPath)
	return nil
}

// loadDocument retrieves the raw resume from whichever source was given.
func loadDocument(ctx context.Context, opts extractOptions) (*fetch.Document, error) {
	switch {
	case opts.File != "":
		return fetch.File(opts.File)
	case opts.URL != "":
		return fetch.URLDocument(ctx, opts.URL, fetch.DefaultOptions())
	case opts.S3URI != "":
		cfg, err := loadAppConfig(configPath)
		if err != nil {
			return nil, err
		}
		client, err := fetch.NewS3Client(ctx, fetch.S3Config{
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		})
		if err != nil {
			return nil, err
		}
		return fetch.NewS3Source(client).Fetch(ctx, opts.S3URI)
	default:
		return nil, fmt.Errorf("one of --file, --url or --s3 must be provided")
	}
}
