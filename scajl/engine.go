package scajl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/reusee/scajl/labels"
	"github.com/reusee/scajl/logs"
	"github.com/reusee/scajl/scopes"
	"github.com/reusee/scajl/syntaxes"
	"github.com/reusee/scajl/variables"
)

const (
	PrevName   = "PREV"
	IndexName  = "INDEX"
	ParentName = "PARENT"

	helpLine   = "?"
	anonPrefix = "ANON"
)

var ErrPanic = errors.New("command panicked")

type stackEntry struct {
	from int
	to   *labels.Tree
}

// Engine runs one loaded script. It is not safe for concurrent use.
type Engine struct {
	Name string
	Path string

	registry  *Registry
	callbacks Callbacks
	logger    logs.Logger
	newSpan   logs.NewSpan
	stdin     *bufio.Reader
	stdout    io.Writer
	scripts   ScriptLoader
	kill      *atomic.Bool
	ctx       context.Context
	parent    *Engine

	lines  []string
	anon   map[int]*labels.Tree
	tree   *labels.Tree
	scope  *scopes.Scope
	stack  []stackEntry
	popped *stackEntry
	line   int
	// adhoc is the line being run by Exec.
	adhoc      string
	printDebug bool
}

var _ variables.Context = new(Engine)

func New(registry *Registry, name string, r io.Reader, opts Options) (*Engine, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewString(registry, name, string(content), opts)
}

func NewString(registry *Registry, name string, src string, opts Options) (*Engine, error) {
	e := &Engine{
		Name:       name,
		Path:       opts.Path,
		registry:   registry,
		logger:     opts.Logger,
		newSpan:    opts.NewSpan,
		scripts:    opts.Scripts,
		kill:       opts.Kill,
		ctx:        context.Background(),
		anon:       make(map[int]*labels.Tree),
		tree:       labels.NewTree(labels.Global),
		printDebug: opts.PrintDebug,
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.kill == nil {
		e.kill = new(atomic.Bool)
	}
	var stdin io.Reader = os.Stdin
	if opts.Stdin != nil {
		stdin = opts.Stdin
	}
	e.stdin = bufio.NewReader(stdin)
	e.stdout = os.Stdout
	if opts.Stdout != nil {
		e.stdout = opts.Stdout
	}
	e.scope = scopes.New(e.tree)

	start := time.Now()
	if err := e.load(src); err != nil {
		e.logger.Debug("script load failed", "error", err)
		return nil, err
	}
	e.logger.Debug("script loaded",
		"lines", len(e.lines),
		"duration", time.Since(start),
	)
	e.callbacks = e.defaultCallbacks(opts.Callbacks)
	e.scope.Put(ParentName, variables.Null)
	return e, nil
}

func (e *Engine) load(src string) error {
	var stripper syntaxes.Stripper
	var merges []int
	anonCount := 0

	for num, raw := range strings.Split(src, "\n") {
		line := stripper.Strip(raw)
		if strings.HasPrefix(line, syntaxes.EndOfScript) {
			break
		}
		last := false
		if strings.HasSuffix(line, syntaxes.EndOfScript) {
			line = strings.TrimSpace(strings.TrimSuffix(line, syntaxes.EndOfScript))
			last = true
		}
		fail := func(err error) error {
			return &LoadError{
				Line: num,
				Text: line,
				Err:  err,
			}
		}

		switch {
		case labels.IsLabelLine(line):
			label, err := labels.Parse(line, num)
			if err != nil {
				return fail(err)
			}
			if _, err := e.tree.Open(label); err != nil {
				return fail(err)
			}
		case labels.IsCloseLine(line):
			if err := e.tree.Close(); err != nil {
				return fail(err)
			}
		case syntaxes.IsAnonOpen(line):
			mods := line[1:]
			sub, err := e.tree.Open(labels.Label{
				Name:       fmt.Sprintf("%s%d", anonPrefix, anonCount),
				Line:       num,
				Scoped:     true,
				Accessible: strings.ContainsRune(mods, labels.Accessible),
				GetsAccess: strings.ContainsRune(mods, labels.GetsAccess),
			})
			if err != nil {
				return fail(err)
			}
			anonCount++
			e.anon[num] = sub
		case syntaxes.IsAnonClose(line):
			if err := e.tree.Close(); err != nil {
				return fail(err)
			}
		}

		if strings.HasPrefix(line, string(syntaxes.LineMerge)) {
			merges = append(merges, num)
		}
		e.lines = append(e.lines, line)
		if last {
			break
		}
	}

	if open := e.tree.Growing(); open != nil {
		return &LoadError{
			Line: open.Label.Line,
			Text: e.lines[open.Label.Line],
			Err:  fmt.Errorf("%w: %s", labels.ErrOpen, open.Label.Name),
		}
	}
	if err := e.tree.Close(); err != nil {
		return &LoadError{
			Line: len(e.lines),
			Err:  err,
		}
	}

	for i := len(merges) - 1; i >= 0; i-- {
		m := merges[i]
		rest := strings.TrimSpace(e.lines[m][1:])
		if m > 0 {
			e.lines[m-1] = strings.TrimSpace(e.lines[m-1] + " " + rest)
		}
		e.lines[m] = ""
	}

	for i, line := range e.lines {
		if err := syntaxes.SyntaxCheck(line); err != nil {
			return &LoadError{
				Line: i,
				Text: line,
				Err:  err,
			}
		}
	}
	return nil
}

// Run runs the script from its first line.
func (e *Engine) Run(ctx context.Context, bindings ...variables.Binding) error {
	return e.run(ctx, e.tree, bindings)
}

// RunFrom runs the script from the named label. Any label in the script can be named.
func (e *Engine) RunFrom(ctx context.Context, label string, bindings ...variables.Binding) error {
	tree := e.LabelFor(label)
	if tree == nil {
		tree = e.tree.Find(label)
	}
	if tree == nil {
		exc := e.exceptf("Invalid label specification", label, "No label found.")
		e.callbacks.ParseException(exc)
		return exc
	}
	return e.run(ctx, tree, bindings)
}

func (e *Engine) run(ctx context.Context, tree *labels.Tree, bindings []variables.Binding) (err error) {
	if e.newSpan != nil {
		ctx, _ = e.newSpan(ctx, "", "script", e.Name, "label", tree.Label.Name)
	}
	start := time.Now()
	e.logger.DebugContext(ctx, "run start", "label", tree.Label.Name)
	defer func() {
		e.logger.DebugContext(ctx, "run end",
			"label", tree.Label.Name,
			"duration", time.Since(start),
			"error", err,
		)
	}()

	outer := e.ctx
	e.ctx = ctx
	stackDepth := len(e.stack)
	scopeDepth := e.scope.Depth()
	defer func() {
		e.ctx = outer
		e.stack = e.stack[:stackDepth]
		e.popped = nil
		for e.scope.Depth() > scopeDepth {
			if _, err := e.scope.Pop(); err != nil {
				break
			}
		}
	}()

	err = e.runFrom(tree, bindings)
	if err != nil {
		var exc *Exception
		if errors.As(err, &exc) {
			e.callbacks.ParseException(exc)
		}
		return err
	}
	return ctx.Err()
}

// Exec runs a single line against the current variables, outside of the loaded lines.
func (e *Engine) Exec(ctx context.Context, line string) (variables.Variable, error) {
	line = new(syntaxes.Stripper).Strip(line)
	if err := syntaxes.SyntaxCheck(line); err != nil {
		le := &LoadError{
			Text: line,
			Err:  err,
		}
		e.callbacks.Error(le.Error())
		return nil, le
	}
	if line == helpLine {
		e.printCommands()
		return e.Prev(), nil
	}

	outer := e.ctx
	e.ctx = ctx
	e.adhoc = line
	e.stack = append(e.stack, stackEntry{
		from: e.line,
		to:   e.tree,
	})
	stackDepth := len(e.stack) - 1
	defer func() {
		e.ctx = outer
		e.adhoc = ""
		e.stack = e.stack[:stackDepth]
		e.popped = nil
	}()

	ran := false
	if _, err := e.runLine(line, &ran, nil); err != nil {
		var exc *Exception
		if errors.As(err, &exc) {
			e.callbacks.ParseException(exc)
		}
		return nil, err
	}
	return e.Prev(), nil
}

func (e *Engine) runFrom(tree *labels.Tree, bindings []variables.Binding) error {
	e.push(tree)
	for _, b := range bindings {
		if err := e.Put(b.Name, b.Value); err != nil {
			return err
		}
	}

	ran := false
	labelsDeep := 0
	for e.line < len(e.lines) && len(e.stack) > 0 && !e.Killed() {
		line := e.lines[e.line]
		switch {
		case line == "":
		case labels.IsLabelLine(line):
			labelsDeep++
		case labelsDeep == 0:
			switch {
			case line == helpLine:
				e.printCommands()
			case syntaxes.IsAnonOpen(line):
				e.scope.Push(e.anon[e.line])
			case syntaxes.IsAnonClose(line):
				if _, err := e.scope.Pop(); err != nil {
					return e.except(err)
				}
			default:
				brk, err := e.runLine(line, &ran, nil)
				if err != nil {
					return err
				}
				if brk {
					return nil
				}
			}
		case labels.IsCloseLine(line):
			labelsDeep--
		}
		e.line++
		e.callbacks.PollEvents()
	}
	return nil
}

func (e *Engine) push(to *labels.Tree) {
	e.stack = append(e.stack, stackEntry{
		from: e.line,
		to:   to,
	})
	e.line = to.Label.Line + 1
	if to.Label.Scoped {
		e.scope.Push(to)
	}
	if e.printDebug {
		e.callbacks.Debugger("RUNNING FROM:", to.Label.Name, "")
	}
}

// pop ends the label on top of the stack and returns the frame it ran in.
func (e *Engine) pop() (*scopes.Frame, error) {
	if len(e.stack) == 0 {
		return nil, e.exceptf("Return outside of a label", e.text(), "")
	}
	entry := e.stack[len(e.stack)-1]
	e.stack = e.stack[:len(e.stack)-1]
	e.popped = &entry
	e.line = entry.from
	if e.printDebug {
		e.callbacks.Debugger("RETURNING FROM:", entry.to.Label.Name, "")
	}
	if entry.to.Label.Scoped {
		frame, err := e.scope.Pop()
		if err != nil {
			return nil, e.except(err)
		}
		return frame, nil
	}
	return e.scope.Top(), nil
}

// runLine runs one executable line, repeating it for inline loops.
// It reports whether a return ended the current label.
func (e *Engine) runLine(line string, ran *bool, self variables.Variable) (bool, error) {
	if line == "" || labels.IsLabelLine(line) {
		return false, nil
	}
	h, err := parseHead(line)
	if err != nil {
		return false, e.except(err)
	}
	if h.help {
		return false, e.printHelp(h.name)
	}

	count := 1
	if h.while != "" {
		count = 0
	}
	if h.count != "" {
		count, err = e.intToken(h.count, self)
		if err != nil {
			return false, err
		}
	}
	loop := false
	if h.while != "" {
		loop, err = e.boolToken(h.while, self)
		if err != nil {
			return false, err
		}
	}
	looping := h.count != "" || h.while != ""
	if looping {
		e.scope.Put(IndexName, variables.NumberOf(0))
	}

	for i := 0; !e.Killed() && (i < count || (h.while != "" && loop)); {
		out, input, ok, err := e.dispatch(h, ran, self)
		if err != nil {
			return false, err
		}
		if ok {
			if out == nil {
				out = e.Prev()
			}
			e.scope.Put(PrevName, out)
			for _, target := range h.targets {
				if err := variables.Put(e, target, out, self); err != nil {
					return false, e.except(err)
				}
			}
			raw := out.Raw()
			e.callbacks.Prev(h.name, raw)
			if e.printDebug {
				e.callbacks.Debugger(h.name, input, raw)
			}
		}
		if e.popped != nil {
			e.popped = nil
			return true, nil
		}
		i++
		if looping {
			e.scope.Put(IndexName, variables.NumberOf(float64(i)))
		}
		if h.while != "" {
			loop, err = e.boolToken(h.while, self)
			if err != nil {
				return false, err
			}
		}
	}
	if h.count != "" {
		e.scope.Put(IndexName, variables.NumberOf(float64(count)))
	}
	return false, nil
}

// dispatch runs the command of h once.
// ran carries whether the previous line in the chain ran, for inline else.
func (e *Engine) dispatch(h *head, ran *bool, self variables.Variable) (variables.Variable, string, bool, error) {
	cmd, _ := e.registry.Resolve(h.name)
	if cmd == nil {
		return nil, "", false, e.exceptf("Unknown command", h.name, "")
	}
	if cmd.Disabled() {
		return nil, "", false, e.exceptf("Disabled command", cmd.Name, "")
	}

	*ran = *ran && h.isElse
	if *ran {
		return nil, "", false, nil
	}
	if h.cond != "" {
		ok, err := e.boolToken(h.cond, self)
		if err != nil {
			return nil, "", false, err
		}
		if !ok {
			return nil, "", false, nil
		}
	}
	*ran = true

	args, input, err := e.parseArgs(cmd, h, self)
	if err != nil {
		return nil, "", false, err
	}
	out, err := e.call(cmd, args)
	if err != nil {
		return nil, "", false, err
	}
	return out, input, true, nil
}

func (e *Engine) call(cmd *Command, args []any) (out variables.Variable, err error) {
	if cmd.fn == nil {
		return nil, e.exceptf("Command without function", cmd.Name, "")
	}
	defer func() {
		if p := recover(); p != nil {
			out = nil
			err = e.callbacks.Exception(fmt.Errorf("%w: %s: %v", ErrPanic, cmd.Name, p))
		}
	}()
	out, err = cmd.fn(e, args)
	if err != nil && !isScriptError(err) {
		return nil, e.callbacks.Exception(err)
	}
	return out, e.except(err)
}

func (e *Engine) resolve(tok string, raw bool, self variables.Variable) (variables.Variable, error) {
	v, err := variables.Resolve(e, tok, raw, self)
	if err != nil {
		return nil, e.except(err)
	}
	return v, nil
}

func (e *Engine) boolToken(tok string, self variables.Variable) (bool, error) {
	v, err := e.resolve(tok, false, self)
	if err != nil {
		return false, err
	}
	b, err := parseBool(e, v)
	if err != nil {
		return false, e.except(err)
	}
	if b == nil {
		return false, e.exceptf("Invalid token resolution", v.Raw(), "Expected type: "+ArgBoolean.Name+". From tokens: "+tok)
	}
	return b.(bool), nil
}

func (e *Engine) intToken(tok string, self variables.Variable) (int, error) {
	v, err := e.resolve(tok, false, self)
	if err != nil {
		return 0, err
	}
	i, err := parseInt(e, v)
	if err != nil {
		return 0, e.except(err)
	}
	if i == nil {
		return 0, e.exceptf("Invalid token resolution", v.Raw(), "Expected type: "+ArgInt.Name+". From tokens: "+tok)
	}
	return i.(int), nil
}

// RunExecutable runs the body of x. Bindings get a frame of their own.
func (e *Engine) RunExecutable(x *variables.Executable) (variables.Variable, error) {
	pushed := len(x.Bindings) > 0
	if pushed {
		e.scope.Push(e.currentTree())
		for _, b := range x.Bindings {
			if err := e.Put(b.Name, b.Value); err != nil {
				_, _ = e.scope.Pop()
				return nil, err
			}
		}
	}
	ran := false
	_, err := e.runLine(x.Body, &ran, x.Self)
	out := e.Prev()
	if pushed {
		if _, popErr := e.scope.Pop(); popErr != nil && err == nil {
			err = e.except(popErr)
		}
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Engine) Lookup(name string) variables.Variable {
	return e.scope.Get(name)
}

func (e *Engine) Store(name string, v variables.Variable) error {
	e.scope.Put(name, v)
	return nil
}

// Get reads a variable path such as "a.b.0".
func (e *Engine) Get(path string) (variables.Variable, error) {
	return e.resolve(path, false, nil)
}

// Put writes a variable path such as "a.b.0".
func (e *Engine) Put(path string, v variables.Variable) error {
	return e.except(variables.Put(e, path, v, nil))
}

func (e *Engine) Prev() variables.Variable {
	if v := e.scope.Get(PrevName); v != nil {
		return v
	}
	return variables.Null
}

// LabelFor resolves a jump target from the label on top of the stack.
func (e *Engine) LabelFor(name string) *labels.Tree {
	from := e.currentTree()
	if t := from.Lookup(name); t != nil {
		return t
	}
	t := e.tree.Find(name)
	if t != nil && (t.Label.Accessible || from.Label.GetsAccess) {
		return t
	}
	return nil
}

func (e *Engine) currentTree() *labels.Tree {
	if len(e.stack) == 0 {
		return e.tree
	}
	return e.stack[len(e.stack)-1].to
}

func (e *Engine) text() string {
	if e.adhoc != "" {
		return e.adhoc
	}
	if e.line >= 0 && e.line < len(e.lines) {
		return e.lines[e.line]
	}
	return ""
}

func (e *Engine) Kill() {
	e.kill.Store(true)
}

// Killed reports whether the engine was killed or its run context is done.
func (e *Engine) Killed() bool {
	return e.kill.Load() || e.ctx.Err() != nil
}

func (e *Engine) Context() context.Context {
	return e.ctx
}

func (e *Engine) Logger() logs.Logger {
	return e.logger
}

func (e *Engine) Registry() *Registry {
	return e.registry
}

func (e *Engine) Lines() []string {
	return e.lines
}

// Line returns the zero based line being run.
func (e *Engine) Line() int {
	return e.line
}

// Parent is the engine that started e through run_script, if any.
func (e *Engine) Parent() *Engine {
	return e.parent
}

func (e *Engine) Scope() *scopes.Scope {
	return e.scope
}

func (e *Engine) Tree() *labels.Tree {
	return e.tree
}

func (e *Engine) SetPrintDebug(b bool) {
	e.printDebug = b
}

func (e *Engine) Print(s string) {
	e.callbacks.Print(s)
}

// IntegrateVarsFrom copies the globals of other into e.
func (e *Engine) IntegrateVarsFrom(other *Engine) {
	e.scope.Integrate(other.scope)
}

func (e *Engine) printHelp(name string) error {
	cmd, typ := e.registry.Resolve(name)
	switch {
	case cmd != nil:
		e.callbacks.Print(cmd.InfoString())
	case typ != nil:
		var b strings.Builder
		b.WriteString("--- Type Hierarchy ---\n")
		b.WriteString(typ.Hierarchy())
		b.WriteString("\n--- Commands ---\n")
		for _, c := range typ.Commands() {
			b.WriteString("    ")
			b.WriteString(c.InfoString())
			b.WriteString("\n")
		}
		e.callbacks.Print(b.String())
	default:
		return e.exceptf("Unrecognized command for help request", name, "Cannot display help text")
	}
	return nil
}

func (e *Engine) printCommands() {
	e.callbacks.Print("--- Commands ---")
	for _, cmd := range e.registry.Commands() {
		e.callbacks.Print("   " + cmd.InfoString())
	}
	e.callbacks.Print("--- Types ---")
	for _, t := range e.registry.Types() {
		e.callbacks.Print("   " + t.InfoString())
	}
}
