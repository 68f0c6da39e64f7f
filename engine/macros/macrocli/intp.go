package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/derekparker/trie"
	"github.com/npillmayer/fontmacros/core"
	"github.com/npillmayer/fontmacros/core/font"
	"github.com/npillmayer/fontmacros/core/font/fontquery"
	"github.com/npillmayer/fontmacros/core/font/fontregistry"
	"github.com/npillmayer/fontmacros/core/font/sfntimport"
	"github.com/npillmayer/fontmacros/core/locate/resources"
	"github.com/npillmayer/fontmacros/core/parameters"
	"github.com/npillmayer/fontmacros/engine/edit"
	"github.com/npillmayer/fontmacros/engine/macros"
	"github.com/npillmayer/schuko"
	"github.com/pterm/pterm"
	"golang.org/x/image/font/gofont/goregular"
)

// Intp is our interpreter object
type Intp struct {
	sess     *edit.Session
	macros   *macros.Registry
	fonts    *fontregistry.Registry
	conf     schuko.Configuration
	repl     *readline.Instance
	commands *trie.Trie
}

// NewIntp creates an interpreter without an open font.
func NewIntp(conf schuko.Configuration, reg *macros.Registry, fonts *fontregistry.Registry) *Intp {
	intp := &Intp{
		sess:     edit.NewSession(nil, conf),
		macros:   reg,
		fonts:    fonts,
		conf:     conf,
		commands: trie.New(),
	}
	intp.sess.Display = &ptermDisplay{intp: intp}
	intp.sess.Console = ptermConsole{}
	for code, c := range commands {
		intp.commands.Add(c.name, code)
	}
	return intp
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Command codes
const (
	QUIT int = iota
	HELP
	OPEN
	IMPORT
	SAVE
	FONTS
	USE
	MASTER
	SELECT
	EDIT
	NODES
	ANCHORS
	MACROS
	RUN
	UNDO
	REDO
	TABS
	TAB
	QUERY
	SETTINGS
)

type command struct {
	name string
	args string
	help string
}

var commands = []command{
	QUIT:     {"quit", "", "leave the console"},
	HELP:     {"help", "[command]", "show help"},
	OPEN:     {"open", "<file.yaml>", "open a font document"},
	IMPORT:   {"import", "<name|path|url>|gosans", "import a binary font; without argument list font files"},
	SAVE:     {"save", "[file]", "save the current document"},
	FONTS:    {"fonts", "", "list open fonts"},
	USE:      {"use", "<name>", "switch to an open font"},
	MASTER:   {"master", "<id|name>", "switch the active master"},
	SELECT:   {"select", "all|<glyph>…|<xpath>", "select glyphs"},
	EDIT:     {"edit", "<glyph>", "select a single glyph and show its outline"},
	NODES:    {"nodes", "all|none|<path>:<node>…", "select nodes of the selected glyphs"},
	ANCHORS:  {"anchors", "all|none|<name>…", "select anchors of the selected glyphs"},
	MACROS:   {"macros", "[prefix]", "list macros"},
	RUN:      {"run", "<title> [: args…]", "run a macro; any unique prefix of its title will do"},
	UNDO:     {"undo", "", "undo the last macro"},
	REDO:     {"redo", "", "redo the last undone macro"},
	TABS:     {"tabs", "", "list open tabs"},
	TAB:      {"tab", "<n>|close <n>", "show or close a tab"},
	QUERY:    {"query", "<xpath>", "evaluate an XPath expression on the font"},
	SETTINGS: {"settings", "", "show display settings"},
}

// Command is a parsed console line.
type Command struct {
	code int
	args []string
}

func (intp *Intp) parseCommand(line string) (*Command, error) {
	word, rest := splitWord(line)
	code, err := intp.lookupCommand(word)
	if err != nil {
		return nil, err
	}
	cmd := &Command{code: code}
	switch code {
	case RUN: // e.g. "run Delete Anchors Named : top"
		title, args, _ := strings.Cut(rest, ":")
		cmd.args = append([]string{strings.TrimSpace(title)}, strings.Fields(args)...)
	case SELECT, QUERY:
		if strings.HasPrefix(rest, "/") || code == QUERY {
			cmd.args = []string{rest}
			break
		}
		cmd.args = strings.Fields(rest)
	default:
		cmd.args = strings.Fields(rest)
	}
	tracer().Debugf("parse command = %s %v", commands[code].name, cmd.args)
	return cmd, nil
}

// lookupCommand finds a command by name or unique prefix.
func (intp *Intp) lookupCommand(word string) (int, error) {
	word = strings.ToLower(word)
	if node, ok := intp.commands.Find(word); ok {
		return node.Meta().(int), nil
	}
	keys := intp.commands.PrefixSearch(word)
	if len(keys) == 1 {
		node, _ := intp.commands.Find(keys[0])
		return node.Meta().(int), nil
	}
	if len(keys) > 1 {
		sort.Strings(keys)
		return 0, core.Error(core.EINVALID, "ambiguous command %q: %s", word, strings.Join(keys, ", "))
	}
	return 0, core.Error(core.EINVALID, "unknown command %q, try 'help'", word)
}

func splitWord(line string) (string, string) {
	line = strings.TrimSpace(line)
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i], strings.TrimSpace(line[i+1:])
	}
	return line, ""
}

func (intp *Intp) execute(cmd *Command) (bool, error) {
	args := cmd.args
	arg := func(i int) string {
		if i < len(args) {
			return args[i]
		}
		return ""
	}
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help(arg(0))
	case OPEN:
		if arg(0) == "" {
			return false, core.Error(core.EINVALID, "file name missing")
		}
		f, err := font.Load(arg(0))
		if err != nil {
			return false, err
		}
		return false, intp.useFont(f)
	case IMPORT:
		return false, intp.importFont(arg(0))
	case SAVE:
		f, err := intp.sess.RequireFont()
		if err != nil {
			return false, err
		}
		if err = f.Save(arg(0)); err != nil {
			return false, err
		}
		pterm.Success.Printfln("saved %s to %s", f.Family, f.Filepath)
	case FONTS:
		intp.listFonts()
	case USE:
		f, err := intp.fonts.Lookup(arg(0))
		if err != nil {
			return false, err
		}
		intp.sess.Open(f)
		pterm.Info.Printfln("using %s", f.Family)
	case MASTER:
		if err := intp.sess.SetMaster(strings.Join(args, " ")); err != nil {
			return false, err
		}
		pterm.Info.Printfln("active %s", intp.sess.Master())
	case SELECT:
		return false, intp.selectGlyphs(args)
	case EDIT:
		if err := intp.sess.Select(arg(0)); err != nil {
			return false, err
		}
		return false, intp.showOutline()
	case NODES:
		return false, intp.selectNodes(args)
	case ANCHORS:
		return false, intp.selectAnchors(args)
	case MACROS:
		return false, intp.listMacros(arg(0))
	case RUN:
		if arg(0) == "" {
			return false, core.Error(core.EINVALID, "macro title missing")
		}
		return false, intp.macros.Run(intp.sess, args[0], args[1:]...)
	case UNDO:
		title, err := intp.sess.Undo()
		return false, intp.reportHistory("undid", title, err)
	case REDO:
		title, err := intp.sess.Redo()
		return false, intp.reportHistory("redid", title, err)
	case TABS:
		intp.listTabs()
	case TAB:
		return false, intp.tab(args)
	case QUERY:
		return false, intp.query(arg(0))
	case SETTINGS:
		return false, intp.showSettings()
	}
	return false, nil
}

// --- Documents -------------------------------------------------------------

// loadFont opens a font document or imports a binary font, depending on the
// file extension.
func (intp *Intp) loadFont(name string) error {
	if strings.HasSuffix(strings.ToLower(name), ".yaml") || strings.HasSuffix(strings.ToLower(name), ".yml") {
		f, err := font.Load(name)
		if err != nil {
			return err
		}
		return intp.useFont(f)
	}
	return intp.importFont(name)
}

func (intp *Intp) useFont(f *font.Font) error {
	key, err := intp.fonts.StoreFont(f)
	if err != nil {
		return err
	}
	intp.sess.Open(f)
	pterm.Info.Printfln("opened %s as %q: %d masters, %d glyphs", f.Family, key, len(f.Masters), len(f.Glyphs))
	return nil
}

func (intp *Intp) importFont(name string) error {
	if name == "" {
		files := resources.ListFontFiles("")
		for _, f := range files {
			pterm.Println(f)
		}
		pterm.Info.Printfln("%d font files found", len(files))
		return nil
	}
	if strings.EqualFold(name, "gosans") {
		f, err := sfntimport.Import(goregular.TTF)
		if err != nil {
			return err
		}
		f.Family = "Go Sans"
		return intp.useFont(f)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	fpath, err := resources.ResolveFontFile(name, intp.conf).Await(ctx)
	if err != nil {
		return err
	}
	f, err := sfntimport.ImportFile(fpath)
	if err != nil {
		return err
	}
	return intp.useFont(f)
}

func (intp *Intp) listFonts() {
	current := intp.sess.Font()
	data := pterm.TableData{{"", "Font", "Family", "Glyphs", "File"}}
	for _, key := range intp.fonts.List() {
		f, err := intp.fonts.Lookup(key)
		if err != nil {
			continue
		}
		mark := ""
		if f == current {
			mark = "*"
		}
		data = append(data, []string{mark, key, f.Family, strconv.Itoa(len(f.Glyphs)), f.Filepath})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// --- Selection -------------------------------------------------------------

func (intp *Intp) selectGlyphs(args []string) error {
	f, err := intp.sess.RequireFont()
	if err != nil {
		return err
	}
	switch {
	case len(args) == 0:
	case len(args) == 1 && args[0] == "all":
		intp.sess.SelectAllGlyphs()
	case strings.HasPrefix(args[0], "/"):
		glyphs, err := fontquery.Glyphs(f, args[0])
		if err != nil {
			return err
		}
		intp.sess.SelectGlyphs(glyphs...)
	default:
		if err := intp.sess.Select(args...); err != nil {
			return err
		}
	}
	names := make([]string, 0)
	for _, g := range intp.sess.Selected() {
		names = append(names, g.Name)
	}
	pterm.Info.Printfln("%d glyphs selected: %s", len(names), strings.Join(names, " "))
	return nil
}

func (intp *Intp) selectedLayers() ([]*font.Layer, error) {
	if _, err := intp.sess.RequireFont(); err != nil {
		return nil, err
	}
	layers := intp.sess.Layers()
	if len(layers) == 0 {
		return nil, core.Error(core.ENOSELECTION, "no glyphs selected")
	}
	return layers, nil
}

func (intp *Intp) selectNodes(args []string) error {
	layers, err := intp.selectedLayers()
	if err != nil {
		return err
	}
	for _, l := range layers {
		for _, a := range args {
			switch a {
			case "all", "none":
				for _, p := range l.Paths {
					for _, n := range p.Nodes {
						n.Selected = a == "all"
					}
				}
			default:
				pinx, ninx, err := parseNodeRef(a)
				if err != nil {
					return err
				}
				if err = l.SelectNode(pinx, ninx); err != nil {
					return err
				}
			}
		}
		pterm.Info.Printfln("%s: %d points selected", l.Name(), len(l.Selection()))
	}
	return nil
}

func parseNodeRef(ref string) (int, int, error) {
	p, n, ok := strings.Cut(ref, ":")
	pinx, err1 := strconv.Atoi(p)
	ninx, err2 := strconv.Atoi(n)
	if !ok || err1 != nil || err2 != nil {
		return 0, 0, core.Error(core.EINVALID, "node reference must be <path>:<node>, is %q", ref)
	}
	return pinx, ninx, nil
}

func (intp *Intp) selectAnchors(args []string) error {
	layers, err := intp.selectedLayers()
	if err != nil {
		return err
	}
	for _, l := range layers {
		switch {
		case len(args) == 1 && (args[0] == "all" || args[0] == "none"):
			for _, a := range l.Anchors {
				a.Selected = args[0] == "all"
			}
		default:
			if n := l.SelectAnchors(args...); n == 0 {
				pterm.Warning.Printfln("%s: no such anchors", l.Name())
			}
		}
		pterm.Info.Printfln("%s: %d points selected", l.Name(), len(l.Selection()))
	}
	return nil
}

func (intp *Intp) showOutline() error {
	layers, err := intp.selectedLayers()
	if err != nil {
		return err
	}
	l := layers[0]
	pterm.DefaultSection.Println(l.Name())
	data := pterm.TableData{{"Ref", "Type", "Position", "Selected"}}
	for i, p := range l.Paths {
		for j, n := range p.Nodes {
			data = append(data, []string{fmt.Sprintf("%d:%d", i, j), string(n.Type), n.Point.String(),
				selmark(n.Selected)})
		}
	}
	for _, a := range l.Anchors {
		data = append(data, []string{a.Name, "anchor", a.Point.String(), selmark(a.Selected)})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func selmark(sel bool) string {
	if sel {
		return "●"
	}
	return ""
}

// --- Macros and history ----------------------------------------------------

func (intp *Intp) listMacros(prefix string) error {
	data := pterm.TableData{{"Category", "Title", "Help"}}
	for _, m := range intp.macros.Macros() {
		if prefix != "" && !strings.HasPrefix(strings.ToLower(m.Title), strings.ToLower(prefix)) {
			continue
		}
		data = append(data, []string{m.Category, m.Title, m.Help})
	}
	if len(data) == 1 {
		return core.Error(core.EMISSING, "no macro matches %q", prefix)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) reportHistory(what, title string, err error) error {
	if err != nil {
		return intp.sess.Report(err)
	}
	pterm.Info.Printfln("%s %q", what, title)
	return nil
}

// --- Tabs, queries and settings --------------------------------------------

func (intp *Intp) listTabs() {
	cur, _ := intp.sess.CurrentTab()
	for i, t := range intp.sess.Tabs() {
		mark := " "
		if t == cur {
			mark = "*"
		}
		pterm.Printfln("%s %2d %-24s %s", mark, i, t.Title, t.Text())
	}
}

func (intp *Intp) tab(args []string) error {
	if len(args) == 2 && args[0] == "close" {
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return core.Error(core.EINVALID, "tab number expected, is %q", args[1])
		}
		return intp.sess.Report(intp.sess.CloseTab(i))
	}
	if len(args) != 1 {
		return core.Error(core.EINVALID, "usage: tab <n> | tab close <n>")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return core.Error(core.EINVALID, "tab number expected, is %q", args[0])
	}
	if err := intp.sess.SwitchTab(i); err != nil {
		return intp.sess.Report(err)
	}
	t, _ := intp.sess.CurrentTab()
	pterm.DefaultSection.Println(t.Title)
	for _, line := range t.Lines() {
		pterm.Println(line)
	}
	return nil
}

func (intp *Intp) query(expr string) error {
	f, err := intp.sess.RequireFont()
	if err != nil {
		return err
	}
	if expr == "" {
		return core.Error(core.EINVALID, "query missing")
	}
	v, err := fontquery.Evaluate(f, expr)
	if err != nil {
		return err
	}
	pterm.Printfln("%v", v)
	return nil
}

func (intp *Intp) showSettings() error {
	data := pterm.TableData{{"Setting", "Value"}}
	for _, p := range parameters.Parameters() {
		data = append(data, []string{p.String(), fmt.Sprintf("%v", intp.sess.Settings.Get(p))})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// --- Completion ------------------------------------------------------------

// Do completes command names and macro titles. It is part of interface
// readline.AutoCompleter.
func (intp *Intp) Do(line []rune, pos int) ([][]rune, int) {
	typed := string(line[:pos])
	word, rest := splitWord(typed)
	if !strings.ContainsAny(typed, " \t") { // complete command name
		var cands [][]rune
		keys := intp.commands.PrefixSearch(strings.ToLower(word))
		sort.Strings(keys)
		for _, k := range keys {
			cands = append(cands, []rune(k[len(word):]+" "))
		}
		return cands, len([]rune(word))
	}
	code, err := intp.lookupCommand(word)
	if err != nil || code != RUN || strings.Contains(rest, ":") {
		return nil, 0
	}
	rest = strings.TrimLeft(typed[len(word):], " \t")
	var cands [][]rune
	for _, title := range intp.macros.Complete(rest) {
		if len(title) >= len(rest) && strings.EqualFold(title[:len(rest)], rest) {
			cands = append(cands, []rune(title[len(rest):]))
		}
	}
	return cands, len([]rune(rest))
}

var _ readline.AutoCompleter = (*Intp)(nil)

// --- Help ------------------------------------------------------------------

func help(topic string) {
	tracer().Infof("help %v", topic)
	if topic != "" {
		for _, c := range commands {
			if c.name == strings.ToLower(topic) {
				pterm.Printfln("%s %s\n    %s", c.name, c.args, c.help)
				return
			}
		}
		pterm.Error.Printfln("no command %q", topic)
		return
	}
	pterm.Info.Println("Commands (any unique prefix will do)")
	for _, c := range commands {
		pterm.Printfln("  %-9s %-28s %s", c.name, c.args, c.help)
	}
	pterm.Println(`
  Macros act on the selected glyphs, using the layers of the active master.
  Alignment macros act on the selected nodes and anchors of these layers.`)
}
