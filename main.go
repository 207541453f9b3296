package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Filtering
	showAll         bool
	ignorePatterns  []string
	includePatterns []string
	noGitignore     bool
	caseInsensitive bool
	maxDepth        int
	maxFiles        int
	followLinks     bool

	// Sorting
	sortKey     string
	reverseSort bool

	// Search
	windowRadius int
	windowless   bool
	numThreads   int

	// Display
	relativePath bool
	fullPath     bool
	showSize     bool
	showDate     bool
	shortDate    bool
	dirDetail    bool
	enumerate    bool
	showElapsed  bool
	grayscale    bool
	quoteNames   bool
	flatList     bool
	justCounts   bool
	indentWidth  int

	// Output
	outputFile      string
	pdfOutputFile   string
	copyToClipboard bool

	// Interactive Mode
	interactiveMode bool
)

// version is the application version, set via ldflags.
var version string = "dev"

var rootCmd = &cobra.Command{
	Use:   "rippy [DIRECTORY] [PATTERN]",
	Short: "rippy crawls a directory tree, optionally searching file contents.",
	Long: `rippy crawls the directory specified according to arguments, optionally
executing multithreaded searches for the pattern provided, and returns the
results as a pruned, sorted and pretty printed terminal tree or JSON export.`,
	Version: version,
	Args:    cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()

		rootArg := "."
		rawPattern := ""
		if len(args) > 0 {
			rootArg = args[0]
		}
		if len(args) > 1 {
			rawPattern = args[1]
		}

		if viper.GetBool("interactive") {
			picked, err := pickRootInteractive(viper.GetBool("all"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if picked == "" {
				// User aborted interactive selection.
				os.Exit(0)
			}
			rootArg = picked
		}

		if err := run(rootArg, rawPattern, start); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// run executes one full invocation: resolve, walk, search, prune,
// aggregate, sort, export, render.
func run(rootArg, rawPattern string, start time.Time) error {
	if isGitURL(rootArg) {
		tempDir, err := cloneGitRepo(rootArg)
		if err != nil {
			return err
		}
		defer os.RemoveAll(tempDir)
		rootArg = tempDir
	}

	cfg := configFromViper(rootArg)
	if err := resolveConfig(cfg, rawPattern); err != nil {
		return err
	}

	color.NoColor = cfg.Grayscale ||
		(!isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()))

	tree, err := newWalker(cfg).Walk()
	if err != nil {
		return err
	}

	stats := &SearchStats{}
	if cfg.IsSearch() {
		files := collectFiles(tree)
		newSearchEngine(cfg).Search(files, stats)
		prune(tree)
	}
	aggregate(tree)
	sortTree(tree, cfg)

	if cfg.OutputFile != "" {
		// Export failure is fatal only to the export step; the tree still
		// renders below.
		if err := writeJSON(tree, cfg.OutputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output to file: %v\n", err)
		}
	}

	counts := countTree(tree)
	var report string
	if !cfg.JustCounts {
		report = renderTree(tree, cfg)
	}
	summary := formatSummary(cfg, stats, counts, time.Since(start))

	if cfg.PDFFile != "" {
		if err := writePDF(stripANSI(report), stripANSI(summary), cfg.PDFFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating PDF: %v\n", err)
		}
	}

	writeReport(report+summary+"\n", cfg)
	return nil
}

// configFromViper materializes the run configuration by reading every bound
// key back through viper, so explicit flags override config-file values,
// which override RIPPY_* environment values and built-in defaults.
func configFromViper(root string) *Config {
	ignores := viper.GetStringSlice("ignore")
	if len(ignores) == 0 {
		// The config file can supply standing ignore patterns; an explicit
		// -i flag overrides them.
		ignores = viper.GetStringSlice("default_ignores")
	}
	return &Config{
		Root:            root,
		IgnorePatterns:  splitPatterns(ignores),
		IncludePatterns: splitPatterns(viper.GetStringSlice("include")),
		ShowAll:         viper.GetBool("all"),
		UseIgnoreFiles:  !viper.GetBool("no_gitignore"),
		CaseInsensitive: viper.GetBool("case_insensitive"),
		MaxDepth:        viper.GetInt("max_depth"),
		MaxFiles:        viper.GetInt("max_files"),
		FollowLinks:     viper.GetBool("follow_links"),
		SortKey:         viper.GetString("sort_by"),
		Reverse:         viper.GetBool("reverse"),
		Radius:          viper.GetInt("window_radius"),
		Windowless:      viper.GetBool("windowless"),
		Threads:         viper.GetInt("threads"),
		ShowSize:        viper.GetBool("size"),
		ShowDate:        viper.GetBool("date") || viper.GetBool("short_date"),
		ShortDate:       viper.GetBool("short_date"),
		DirDetail:       viper.GetBool("dir_detail"),
		ShowRelPath:     viper.GetBool("relative_path"),
		ShowFullPath:    viper.GetBool("full_path"),
		Quote:           viper.GetBool("quote"),
		Flat:            viper.GetBool("flat"),
		Enumerate:       viper.GetBool("enumerate"),
		JustCounts:      viper.GetBool("just_counts"),
		ShowElapsed:     viper.GetBool("time"),
		Grayscale:       viper.GetBool("gray"),
		Indent:          viper.GetInt("indent"),
		OutputFile:      viper.GetString("output"),
		PDFFile:         viper.GetString("pdf"),
		Clipboard:       viper.GetBool("clipboard"),
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Filtering
	rootCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Include hidden files and directories")
	viper.BindPFlag("all", rootCmd.Flags().Lookup("all"))
	rootCmd.Flags().StringSliceVarP(&ignorePatterns, "ignore", "i", nil, "Ignore specific file patterns or directories (comma-separated)")
	viper.BindPFlag("ignore", rootCmd.Flags().Lookup("ignore"))
	rootCmd.Flags().StringSliceVarP(&includePatterns, "include", "x", nil, "Restrict search to specific filename patterns (comma-separated)")
	viper.BindPFlag("include", rootCmd.Flags().Lookup("include"))
	rootCmd.Flags().BoolVarP(&noGitignore, "no-gitignore", "g", false, "Don't respect .gitignore files when found")
	viper.BindPFlag("no_gitignore", rootCmd.Flags().Lookup("no-gitignore"))
	rootCmd.Flags().BoolVarP(&caseInsensitive, "case-insensitive", "c", false, "Make pattern matching case insensitive")
	viper.BindPFlag("case_insensitive", rootCmd.Flags().Lookup("case-insensitive"))
	rootCmd.Flags().IntVarP(&maxDepth, "max-depth", "L", -1, "Maximum directory depth to search (-1 for no limit)")
	viper.BindPFlag("max_depth", rootCmd.Flags().Lookup("max-depth"))
	rootCmd.Flags().IntVarP(&maxFiles, "max-files", "m", 0, "Maximum number of files to display per directory (0 for no limit)")
	viper.BindPFlag("max_files", rootCmd.Flags().Lookup("max-files"))
	rootCmd.Flags().BoolVarP(&followLinks, "follow-links", "l", false, "Follow targets of symbolic links when found")
	viper.BindPFlag("follow_links", rootCmd.Flags().Lookup("follow-links"))

	// Sorting
	rootCmd.Flags().StringVarP(&sortKey, "sort-by", "b", "name", "Sorting options: \"date\", \"name\", \"size\" or \"type\"")
	viper.BindPFlag("sort_by", rootCmd.Flags().Lookup("sort-by"))
	rootCmd.Flags().BoolVarP(&reverseSort, "reverse", "z", false, "Reverse sort order from ascending to descending")
	viper.BindPFlag("reverse", rootCmd.Flags().Lookup("reverse"))

	// Search
	rootCmd.Flags().IntVarP(&windowRadius, "window-radius", "r", 20, "Maximum character radius for result snippet window")
	viper.BindPFlag("window_radius", rootCmd.Flags().Lookup("window-radius"))
	rootCmd.Flags().BoolVarP(&windowless, "windowless", "w", false, "Display search results without context snippet window")
	viper.BindPFlag("windowless", rootCmd.Flags().Lookup("windowless"))
	rootCmd.Flags().IntVar(&numThreads, "threads", 0, "Number of search workers (0 for auto)")
	viper.BindPFlag("threads", rootCmd.Flags().Lookup("threads"))

	// Display
	rootCmd.Flags().BoolVarP(&relativePath, "relative-path", "p", false, "Display the relative paths from root with results")
	viper.BindPFlag("relative_path", rootCmd.Flags().Lookup("relative-path"))
	rootCmd.Flags().BoolVarP(&fullPath, "full-path", "k", false, "Display the full canonical paths with results")
	viper.BindPFlag("full_path", rootCmd.Flags().Lookup("full-path"))
	rootCmd.Flags().BoolVarP(&showSize, "size", "s", false, "Display the size of files and directories with results")
	viper.BindPFlag("size", rootCmd.Flags().Lookup("size"))
	rootCmd.Flags().BoolVarP(&showDate, "date", "d", false, "Display the last modified datetime with results")
	viper.BindPFlag("date", rootCmd.Flags().Lookup("date"))
	rootCmd.Flags().BoolVarP(&shortDate, "short-date", "y", false, "Display a shortened last modified date as YYYY-MM-DD")
	viper.BindPFlag("short_date", rootCmd.Flags().Lookup("short-date"))
	rootCmd.Flags().BoolVarP(&dirDetail, "dir-detail", "u", false, "Display size and datetime details for directories")
	viper.BindPFlag("dir_detail", rootCmd.Flags().Lookup("dir-detail"))
	rootCmd.Flags().BoolVarP(&enumerate, "enumerate", "e", false, "Display results enumerated by index within parent")
	viper.BindPFlag("enumerate", rootCmd.Flags().Lookup("enumerate"))
	rootCmd.Flags().BoolVarP(&showElapsed, "time", "t", false, "Display the search duration time with results")
	viper.BindPFlag("time", rootCmd.Flags().Lookup("time"))
	rootCmd.Flags().BoolVarP(&grayscale, "gray", "G", false, "Display the results in grayscale without styling")
	viper.BindPFlag("gray", rootCmd.Flags().Lookup("gray"))
	rootCmd.Flags().BoolVarP(&quoteNames, "quote", "q", false, "Display the path results wrapped in double-quotes")
	viper.BindPFlag("quote", rootCmd.Flags().Lookup("quote"))
	rootCmd.Flags().BoolVarP(&flatList, "flat", "f", false, "Display the results as flat list without indentation")
	viper.BindPFlag("flat", rootCmd.Flags().Lookup("flat"))
	rootCmd.Flags().BoolVarP(&justCounts, "just-counts", "j", false, "Display just entry counts without rendering a tree")
	viper.BindPFlag("just_counts", rootCmd.Flags().Lookup("just-counts"))
	rootCmd.Flags().IntVarP(&indentWidth, "indent", "n", 2, "Character width to use for tree depth indentation")
	viper.BindPFlag("indent", rootCmd.Flags().Lookup("indent"))

	// Output
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Export the results as JSON to specified file")
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	rootCmd.Flags().StringVar(&pdfOutputFile, "pdf", "", "Also render the report as PDF to specified file")
	viper.BindPFlag("pdf", rootCmd.Flags().Lookup("pdf"))
	rootCmd.Flags().BoolVar(&copyToClipboard, "clipboard", false, "Copy the rendered report to the clipboard")
	viper.BindPFlag("clipboard", rootCmd.Flags().Lookup("clipboard"))

	// Interactive Mode
	rootCmd.Flags().BoolVar(&interactiveMode, "interactive", false, "Pick the root directory with a fuzzy finder")
	viper.BindPFlag("interactive", rootCmd.Flags().Lookup("interactive"))

	viper.SetDefault("window_radius", 20)
	viper.SetDefault("indent", 2)
	viper.SetDefault("sort_by", "name")
	viper.SetDefault("default_ignores", []string{})
}

// initConfig reads the config file and RIPPY_* environment variables.
func initConfig() {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "rippy"))
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.SetEnvPrefix("RIPPY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
