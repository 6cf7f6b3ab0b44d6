package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"ainoggo/internal/apiclient"
	"ainoggo/internal/config"
	"ainoggo/internal/domain"
	"ainoggo/internal/export"
	"ainoggo/internal/flow"
	"ainoggo/internal/imagesource"
	"ainoggo/internal/port"
	s3storage "ainoggo/internal/storage/s3"
)

const (
	exitOK          = 0
	exitFailed      = 1
	exitUsage       = 2
	exitInterrupted = 130
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(exitUsage)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	log.SetFlags(cfg.Log.Flags())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var code int
	switch os.Args[1] {
	case "analyze":
		code = analyzeCmd(ctx, cfg, os.Args[2:], os.Stdout)
	case "ask":
		code = askCmd(ctx, cfg, os.Args[2:], os.Stdin, os.Stdout)
	case "case-types":
		code = caseTypesCmd(os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		log.Printf("unknown command: %s", os.Args[1])
		printUsage(os.Stderr)
		code = exitUsage
	}

	cancel()
	os.Exit(code)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage:
  ainoggo analyze [-export FILE] <image-ref>
  ainoggo ask [-case TYPE] [-export FILE] [question...]
  ainoggo case-types

Image references may be file paths, file:// URIs or s3://bucket/key.
Export files must end in .csv or .xlsx.`)
}

func analyzeCmd(ctx context.Context, cfg *config.Config, args []string, stdout io.Writer) int {
	flags := flag.NewFlagSet("analyze", flag.ContinueOnError)
	exportPath := flags.String("export", "", "write the analysis to a .csv or .xlsx file")
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}
	if flags.NArg() != 1 {
		log.Printf("analyze takes exactly one image reference")
		return exitUsage
	}

	var downloader port.ObjectDownloader
	if strings.HasPrefix(flags.Arg(0), "s3://") {
		d, err := s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			log.Printf("s3 setup: %v", err)
			return exitFailed
		}
		downloader = d
	}
	src, err := imagesource.NewResolver(downloader).Resolve(flags.Arg(0))
	if err != nil {
		log.Printf("analyze: %v", err)
		return exitUsage
	}

	staging := imagesource.NewStaging(cfg.Staging.Dir)
	defer staging.Cleanup()
	f := flow.NewDocumentFlow(apiclient.NewClient(&cfg.API), staging)
	defer f.Close()

	st, ok := await(ctx, f.Submit(src))
	if !ok {
		return exitInterrupted
	}
	if st.Status == flow.StatusFailed {
		fmt.Fprintln(stdout, st.Error)
		return exitFailed
	}

	printAnalysis(stdout, st.Result)
	return writeExport(*exportPath, "Analysis", export.AnalysisRows(st.Result))
}

func askCmd(ctx context.Context, cfg *config.Config, args []string, stdin io.Reader, stdout io.Writer) int {
	flags := flag.NewFlagSet("ask", flag.ContinueOnError)
	caseFlag := flags.String("case", string(domain.DefaultCaseType), "case type: general, family, property, criminal or business")
	exportPath := flags.String("export", "", "write the answer to a .csv or .xlsx file")
	if err := flags.Parse(args); err != nil {
		return exitUsage
	}

	caseType, err := domain.ParseCaseType(*caseFlag)
	if err != nil {
		log.Printf("ask: %v", err)
		return exitUsage
	}

	question := strings.Join(flags.Args(), " ")
	if strings.TrimSpace(question) == "" {
		fmt.Fprint(stdout, "Enter your question: ")
		scanner := bufio.NewScanner(stdin)
		if scanner.Scan() {
			question = scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			log.Printf("read question: %v", err)
			return exitFailed
		}
	}

	f := flow.NewQueryFlow(apiclient.NewClient(&cfg.API))
	defer f.Close()
	f.SetQuestion(question)
	if err := f.SetCaseType(caseType); err != nil {
		log.Printf("ask: %v", err)
		return exitUsage
	}

	st, ok := await(ctx, f.Submit())
	if !ok {
		return exitInterrupted
	}
	if st.Status == flow.StatusFailed {
		fmt.Fprintln(stdout, st.Error)
		return exitFailed
	}

	printAnswer(stdout, st.Result)
	return writeExport(*exportPath, "Answer", export.QueryRows(st.Result))
}

func caseTypesCmd(stdout io.Writer) int {
	for _, ct := range domain.CaseTypes {
		fmt.Fprintf(stdout, "%-10s %s\n", ct, ct.Label())
	}
	return exitOK
}

// await blocks until the submission settles or ctx is cancelled.
func await[T any](ctx context.Context, ch <-chan flow.State[T]) (flow.State[T], bool) {
	select {
	case st, ok := <-ch:
		return st, ok
	case <-ctx.Done():
		return flow.State[T]{}, false
	}
}

func writeExport(path, sheet string, rows []export.Row) int {
	if path == "" {
		return exitOK
	}
	if err := export.WriteFile(path, sheet, rows); err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) {
			log.Printf("export: %v", err)
			return exitUsage
		}
		log.Printf("export failed: %v", err)
		return exitFailed
	}
	log.Printf("exported to %s", path)
	return exitOK
}

func printAnalysis(w io.Writer, r *domain.AnalysisResult) {
	fmt.Fprintf(w, "Document type: %s\n", r.DocumentType)
	if r.ExtractedText != "" {
		fmt.Fprintf(w, "\nExtracted text:\n%s\n", r.ExtractedText)
	}
	printList(w, "Key elements", r.KeyElements)
	printList(w, "Identified issues", r.IdentifiedIssues)
	printList(w, "Recommendations", r.Recommendations)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}

func printAnswer(w io.Writer, r *domain.QueryResult) {
	if strings.TrimSpace(r.Answer) == "" {
		fmt.Fprintln(w, "no answer found")
		return
	}
	fmt.Fprintln(w, r.Answer)
}
