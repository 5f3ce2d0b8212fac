package commands

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/schemaforge/schemaforge/internal/logger"
	"github.com/schemaforge/schemaforge/internal/output"
	"github.com/schemaforge/schemaforge/pkg/fetcher"
	"github.com/schemaforge/schemaforge/pkg/schemaforge"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate JSON-LD structured data for one or more URLs",
	Long: `Fetch pages, classify them, and assemble validated JSON-LD.

The optional hint steers the pipeline: a preferred type, a strictness
level, feature suppression/enrichment phrases, and item caps are all
recognized.

Examples:
  schemaforge generate -u "https://example.com/recipes/pasta"

  schemaforge generate -u "https://shop.example.com/item/7" \
      --hint "Product, include brand, strict"

  schemaforge generate -u "https://a.example" -u "https://b.example" \
      --format jsonl -o results.jsonl`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	flags := generateCmd.Flags()
	flags.StringSliceP("url", "u", nil, "URL(s) to process (can be repeated)")
	flags.String("hint", "", "free-text guidance for classification")
	flags.String("render-mode", "auto", "render mode: auto, html, headless")
	flags.Duration("timeout", 30*time.Second, "fetch timeout")
	flags.String("user-agent", "", "custom user agent")
	flags.IntP("concurrency", "c", 3, "concurrent requests")

	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "json", "output format: json, jsonl, yaml")
	flags.Bool("compact", false, "disable pretty-printed JSON")

	_ = viper.BindPFlag("render_mode", flags.Lookup("render-mode"))
	_ = viper.BindPFlag("user_agent", flags.Lookup("user-agent"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	urls, _ := cmd.Flags().GetStringSlice("url")
	if len(urls) == 0 {
		return cmd.Help()
	}

	hintText, _ := cmd.Flags().GetString("hint")
	renderMode := viper.GetString("render_mode")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	forge, err := schemaforge.New(
		schemaforge.WithRenderMode(fetcher.Mode(renderMode)),
		schemaforge.WithUserAgent(viper.GetString("user_agent")),
		schemaforge.WithTimeout(timeout),
	)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return err
	}
	defer forge.Close()

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			logger.Error("failed to open output file", "path", path, "error", err)
			return err
		}
		defer f.Close()
		out = f
	}

	format, _ := cmd.Flags().GetString("format")
	var writerOpts []output.Option
	if compact, _ := cmd.Flags().GetBool("compact"); compact {
		writerOpts = append(writerOpts, output.WithCompact())
	}
	writer, err := output.NewWriter(out, output.Format(format), writerOpts...)
	if err != nil {
		return err
	}

	reqs := make([]schemaforge.Request, len(urls))
	for i, u := range urls {
		reqs[i] = schemaforge.Request{URL: u, Hint: hintText, RenderMode: renderMode}
	}

	var failures int
	for result := range forge.GenerateMany(ctx, reqs, concurrency) {
		if result.Error != nil {
			logger.Error("generation failed", "url", result.URL, "error", result.Error)
			failures++
			continue
		}
		size := 0
		if raw, err := json.Marshal(result.JSONLD); err == nil {
			size = len(raw)
		}
		logInfo("%s -> %s (confidence %.2f, %s)",
			result.URL, result.DetectedType, result.Confidence, humanize.Bytes(uint64(size)))
		if err := writer.Write(result); err != nil {
			return err
		}
	}

	if err := writer.Flush(); err != nil {
		return err
	}
	if failures > 0 {
		logInfo("%d of %d URLs failed", failures, len(urls))
	}
	return nil
}

