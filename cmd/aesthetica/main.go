package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"aesthetica/internal/models"
	"aesthetica/internal/server"
	"aesthetica/internal/session"
	"aesthetica/shared/ai"
	"aesthetica/shared/config"
	"aesthetica/shared/media"
	"aesthetica/shared/monitoring"
	"aesthetica/shared/report"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "aesthetica: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aesthetica",
		Short: "Auditoria de criativos em vídeo com IA",
		Long: `Aesthetica AI analisa vídeos de marketing para o nicho de estética e beleza:
notas por dimensão, pontos fortes e fracos, análise de branding e roteiros
otimizados, com exportação do relatório em PDF paginado.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(newServeCmd(), newAnalyzeCmd(), newExportCmd())
	return cmd
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web front-end",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			// A missing key does not block startup: the input screen
			// warns and submissions fail with the classified message.
			var analyzer session.Analyzer = ai.Unconfigured{}
			if cfg.HasCredential() {
				a, err := ai.NewAnalyzer(ctx, cfg)
				if err != nil {
					return err
				}
				analyzer = a
			} else {
				log.Printf("GEMINI_API_KEY not set; analyses will be rejected until it is configured")
			}

			monitor := monitoring.NewMonitor()
			ctrl := session.New(analyzer, monitor)
			rasterizer := &report.ChromeRasterizer{ExecPath: cfg.Export.ChromePath}
			srv, err := server.New(cfg, ctrl, report.NewExporter(), rasterizer, monitor)
			if err != nil {
				return err
			}
			return srv.ListenAndServe()
		},
	}
}

func newAnalyzeCmd() *cobra.Command {
	var contextText string
	var outPath string

	cmd := &cobra.Command{
		Use:   "analyze <video>",
		Short: "Analyze a video file and write the audit as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read video: %w", err)
			}
			asset, err := media.NewAsset(filepath.Base(args[0]), "", data)
			if err != nil {
				return err
			}

			analyzer, err := ai.NewAnalyzer(ctx, cfg)
			if err != nil {
				return err
			}

			ctrl := session.New(analyzer, monitoring.NewMonitor())
			if err := ctrl.Submit(ctx, asset, contextText); err != nil {
				return err
			}
			if err := ctrl.Wait(ctx); err != nil {
				return err
			}

			snap := ctrl.Snapshot()
			if snap.Phase != session.PhaseResults {
				return fmt.Errorf("%s", snap.Err)
			}

			out, err := json.MarshalIndent(snap.Result, "", "  ")
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			if outPath != "" {
				return os.WriteFile(outPath, append(out, '\n'), 0644)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&contextText, "context", "c", "", "Additional context passed to the audit prompt")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the audit JSON to a file instead of stdout")
	return cmd
}

func newExportCmd() *cobra.Command {
	var resultPath string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a saved audit as a paginated PDF",
		Long: `Export mounts the dashboard on an ephemeral local port, captures it with a
headless browser and assembles the paginated A4 document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(resultPath)
			if err != nil {
				return fmt.Errorf("read result: %w", err)
			}
			var result models.AnalysisResult
			if err := json.Unmarshal(data, &result); err != nil {
				return fmt.Errorf("parse result %s: %w", resultPath, err)
			}
			if err := result.Validate(); err != nil {
				return fmt.Errorf("result %s is incomplete: %w", resultPath, err)
			}

			monitor := monitoring.NewMonitor()
			ctrl := session.New(ai.Unconfigured{}, monitor)
			if err := ctrl.Restore(&result); err != nil {
				return err
			}

			exporter := report.NewExporter()
			rasterizer := &report.ChromeRasterizer{ExecPath: cfg.Export.ChromePath}
			srv, err := server.New(cfg, ctrl, exporter, rasterizer, monitor)
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", "127.0.0.1:0")
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			defer ln.Close()
			httpSrv := &http.Server{Handler: srv.Handler()}
			go httpSrv.Serve(ln)
			defer httpSrv.Close()

			baseURL := "http://" + ln.Addr().String()
			srv.SetBaseURL(baseURL)

			capture, err := rasterizer.Capture(ctx, baseURL+"/report")
			if err != nil {
				return fmt.Errorf("capture dashboard: %w", err)
			}
			pdfBytes, name, err := exporter.Export(capture, &result)
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = name
			}
			if err := os.WriteFile(outPath, pdfBytes, 0644); err != nil {
				return fmt.Errorf("write pdf: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", outPath, len(pdfBytes))
			return nil
		},
	}

	cmd.Flags().StringVarP(&resultPath, "result", "r", "", "Audit JSON produced by the analyze command")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output PDF path (defaults to Relatorio-Aesthetica-<date>.pdf)")
	cmd.MarkFlagRequired("result")
	return cmd
}
