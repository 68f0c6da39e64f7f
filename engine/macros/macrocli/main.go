/*
Command macrocli is an interactive console for running font editing macros.

	macrocli [-trace Debug|Info|Error] [-font file|name] [-config file.nt]

Documents are opened from YAML files or imported from binary fonts. Type
'help' at the prompt for a list of commands. Macro titles and command names
complete with TAB.

Configuration is read from fontmacros.nt (NestedText) at the usual per-user
configuration location, or from the file given with -config.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/knadh/koanf/providers/file"
	"github.com/npillmayer/fontmacros/core/font/fontregistry"
	"github.com/npillmayer/fontmacros/engine/edit"
	"github.com/npillmayer/fontmacros/engine/macros"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'fontmacros.macros'
func tracer() tracing.Trace {
	return tracing.Select("fontmacros.macros")
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font document or font to load")
	confpath := flag.String("config", "", "Configuration file (NestedText)")
	flag.Parse()

	// set up configuration and logging
	conf, err := loadConfig(*confpath)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(2)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tracing.RegisterTraceAdapter("logrus", logrusadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().SetTraceLevel(tracing.TraceLevelFromString(*tlevel))
	pterm.Info.Println("Welcome to the font macro console") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up REPL
	intp := NewIntp(conf, macros.Standard(), fontregistry.NewRegistry())
	repl, err := readline.NewEx(&readline.Config{
		Prompt:          "macros > ",
		HistoryFile:     historyFile(),
		AutoComplete:    intp,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp.repl = repl
	//
	// load font to use
	if *fontname != "" { // font name provided by flag
		if err := intp.loadFont(*fontname); err != nil {
			pterm.Error.Println(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                             // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// loadConfig reads the application configuration. Without an explicit path,
// fontmacros.nt is searched for at the usual configuration locations.
func loadConfig(path string) (schuko.Configuration, error) {
	tag := "fontmacros"
	if path != "" {
		tag = "" // suppress searching for default files
	}
	conf := koanfadapter.New(nil, tag, []string{".nt"})
	conf.InitDefaults()
	if path != "" {
		if err := conf.Koanf().Load(file.Provider(path), koanfadapter.Parser()); err != nil {
			return nil, fmt.Errorf("loading configuration %s: %w", path, err)
		}
	}
	if !conf.IsSet("trace.fontmacros.macros") {
		conf.Set("trace.fontmacros.macros", "Error")
	}
	return conf, nil
}

func historyFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "fontmacros")
	if err = os.MkdirAll(dir, 0755); err != nil {
		return ""
	}
	return filepath.Join(dir, "history")
}

var _ edit.Display = (*ptermDisplay)(nil)
var _ edit.Console = ptermConsole{}
