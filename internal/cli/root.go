/*
root wires crawl-tunable flags onto a single cobra command, mirroring the
teacher's internal/cli/root.go: plain fmt output, no logging framework, and
an InitConfig entrypoint the command's Run calls once Execute() has parsed
flags.
*/
package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohmanhakim/sitecrawler/internal/build"
	"github.com/rohmanhakim/sitecrawler/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile       string
	baseURLFlag   string
	maxPages      int
	concurrency   int
	requestDelay  time.Duration
	timeout       time.Duration
	maxRetries    int
	downloadFiles bool
	proxyFile     string
	maxDepth      int
	userAgent     string
	outputDir     string
)

var rootCmd = &cobra.Command{
	Use:     "sitecrawler",
	Short:   "A single-site concurrent web crawler.",
	Version: build.FullVersion(),
	Long: `sitecrawler crawls a single website starting from base_url,
downloading HTML pages and classified files within a bounded worker pool,
and emits a crawl_stats.json summary on every exit path.`,
	Run: func(cmd *cobra.Command, args []string) {
		if baseURLFlag == "" && cfgFile == "" {
			fmt.Fprintf(os.Stderr, "Error: --base-url is required unless --config-file is set.\n")
			cmd.Usage()
			os.Exit(1)
		}

		cfg := InitConfig()

		fmt.Printf("Configuration initialized successfully\n")
		fmt.Printf("Base URL: %s\n", cfg.BaseURL().String())
		fmt.Printf("Max Pages: %d\n", cfg.MaxPages())
		fmt.Printf("Concurrent Requests: %d\n", cfg.Concurrency())
		fmt.Printf("Request Delay: %v\n", cfg.RequestDelay())
		fmt.Printf("Timeout: %v\n", cfg.Timeout())
		fmt.Printf("Max Retries: %d\n", cfg.MaxRetries())
		fmt.Printf("Download Files: %t\n", cfg.DownloadFiles())
		if depth, ok := cfg.MaxDepth(); ok {
			fmt.Printf("Max Depth: %d\n", depth)
		}
		fmt.Printf("User Agent: %s\n", cfg.UserAgent())
		fmt.Printf("Output Directory: %s\n", cfg.OutputDir())

		if err := runCrawl(cmd.Context(), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Called by main.main(). The run cancels on SIGINT/SIGTERM
// so an in-flight crawl still writes crawl_stats.json before exiting.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config-file", "", "config file path (e.g., /home/myuser/config.json)")
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "the single site to crawl, e.g. https://docs.example.com")
	rootCmd.PersistentFlags().IntVar(&maxPages, "max-pages", 0, "maximum number of pages to fetch (values below 1 keep the default of 1000)")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrent-requests", 0, "number of concurrent fetch workers")
	rootCmd.PersistentFlags().DurationVar(&requestDelay, "request-delay", 0, "pacing delay applied between dispatch batches")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "timeout for a single HTTP request")
	rootCmd.PersistentFlags().IntVar(&maxRetries, "max-retries", 0, "maximum fetch attempts per URL")
	rootCmd.PersistentFlags().BoolVar(&downloadFiles, "download-files", true, "download classified files in addition to HTML pages")
	rootCmd.PersistentFlags().StringVar(&proxyFile, "proxy-file", "", "path to a newline-delimited proxy list")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", -1, "maximum link depth from base_url (unset when negative)")
	rootCmd.PersistentFlags().StringVar(&userAgent, "user-agent", "", "user agent string for HTTP requests")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "root output directory for crawled content")
}

// InitConfig reads in config file and CLI flags, exiting the process on
// failure.
func InitConfig() config.Config {
	cfg, err := InitConfigWithError()
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// InitConfigWithError reads in config file and CLI flags, returning any
// errors instead of exiting, so tests can exercise failure paths.
func InitConfigWithError() (config.Config, error) {
	if cfgFile != "" {
		fmt.Printf("Initializing config from file: %s\n", cfgFile)
		cfg, err := config.WithConfigFile(cfgFile)
		if err != nil {
			return cfg, fmt.Errorf("error initializing config from file: %w", err)
		}
		return cfg, nil
	}

	base, err := url.Parse(baseURLFlag)
	if err != nil {
		return config.Config{}, fmt.Errorf("%w: invalid base_url: %s", config.ErrInvalidConfig, err.Error())
	}

	fmt.Println("No config file specified. Using flag values or defaults")
	configBuilder := config.WithDefault(*base)

	if maxPages > 0 {
		configBuilder = configBuilder.WithMaxPages(maxPages)
	}
	if concurrency > 0 {
		configBuilder = configBuilder.WithConcurrency(concurrency)
	}
	if requestDelay > 0 {
		configBuilder = configBuilder.WithRequestDelay(requestDelay)
	}
	if timeout > 0 {
		configBuilder = configBuilder.WithTimeout(timeout)
	}
	if maxRetries > 0 {
		configBuilder = configBuilder.WithMaxRetries(maxRetries)
	}
	configBuilder = configBuilder.WithDownloadFiles(downloadFiles)
	if proxyFile != "" {
		configBuilder = configBuilder.WithProxyFile(proxyFile)
	}
	if maxDepth >= 0 {
		configBuilder = configBuilder.WithMaxDepth(maxDepth)
	}
	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}
	if outputDir != "" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func ResetFlags() {
	cfgFile = ""
	baseURLFlag = ""
	maxPages = 0
	concurrency = 0
	requestDelay = 0
	timeout = 0
	maxRetries = 0
	downloadFiles = true
	proxyFile = ""
	maxDepth = -1
	userAgent = ""
	outputDir = ""
}

// Test helpers to set flag values without going through cobra parsing.
func SetConfigFileForTest(path string)        { cfgFile = path }
func SetBaseURLForTest(u string)              { baseURLFlag = u }
func SetMaxPagesForTest(n int)                { maxPages = n }
func SetConcurrencyForTest(n int)             { concurrency = n }
func SetRequestDelayForTest(d time.Duration)  { requestDelay = d }
func SetTimeoutForTest(d time.Duration)       { timeout = d }
func SetMaxRetriesForTest(n int)              { maxRetries = n }
func SetDownloadFilesForTest(enabled bool)    { downloadFiles = enabled }
func SetProxyFileForTest(path string)         { proxyFile = path }
func SetMaxDepthForTest(depth int)            { maxDepth = depth }
func SetUserAgentForTest(agent string)        { userAgent = agent }
func SetOutputDirForTest(dir string)          { outputDir = dir }
