package scajl

import (
	"fmt"
	"slices"
	"strings"

	"github.com/reusee/scajl/syntaxes"
	"github.com/reusee/scajl/variables"
)

// parseArgs resolves the argument text of h into the values cmd expects.
// It also returns the resolved arguments rendered for debugging.
func (e *Engine) parseArgs(cmd *Command, h *head, self variables.Variable) ([]any, string, error) {
	argStrs := slices.Clone(h.args)
	nArgs := len(cmd.Args)

	varArgArray := false
	if n := len(argStrs); n > 0 && strings.HasPrefix(argStrs[n-1], varArgMark) {
		varArgArray = true
		argStrs[n-1] = strings.TrimSpace(argStrs[n-1][len(varArgMark):])
		if !cmd.varArgs {
			return nil, "", e.exceptf("Var-Arg array cannot be specified for non-var-arg commands", h.name, argStrs[n-1])
		}
	}
	if len(argStrs) != nArgs && !(cmd.varArgs && len(argStrs) >= nArgs-1 && !varArgArray) {
		return nil, "", e.exceptf("Invalid argument count", h.name, fmt.Sprintf(
			"%s requires %d args, but %d have been provided. Args are separated by commas.",
			h.name, nArgs, len(argStrs),
		))
	}

	objs := make([]any, nArgs)
	var variadic []any
	var inputs []string
	for i, argStr := range argStrs {
		atVarArgs := cmd.varArgs && i >= nArgs-1
		if strings.HasPrefix(argStr, varArgMark) {
			return nil, "", e.exceptf("Invalid argument", argStr, "Only the last argument in var-args commands may use the var-arg array modifier '"+varArgMark+"'")
		}
		argType := cmd.Args[cmd.argIndex(i)]
		toks, err := e.preParse(syntaxes.Tokens(argStr), self)
		if err != nil {
			return nil, "", err
		}

		if atVarArgs && varArgArray {
			bundle, input, err := e.parseBundle(cmd, argType, toks, i, self)
			if err != nil {
				return nil, "", err
			}
			objs[nArgs-1] = bundle
			inputs = append(inputs, input)
			continue
		}

		variant := argType.Variant(len(toks))
		if variant == nil {
			return nil, "", e.exceptf("Invalid token count for CmdArg format '"+argType.Name+"'", argStr, fmt.Sprintf(
				"Format requires %d tokens, but %d have been provided. Tokens are separated by spaces. From tokens: %s",
				argType.Tokens, len(toks), strings.Join(toks, " "),
			))
		}
		vars := make([]variables.Variable, len(toks))
		raws := make([]string, len(toks))
		for j, tok := range toks {
			if variant.Verbatim {
				vars[j] = variables.ValueOf(tok)
				raws[j] = tok
				continue
			}
			vars[j], err = e.resolve(tok, cmd.rawArg(i) || variant.raw(j), self)
			if err != nil {
				return nil, "", err
			}
			raws[j] = vars[j].Raw()
		}
		input := strings.Join(raws, " ")
		obj, err := variant.Parse(e, vars)
		if err != nil {
			return nil, "", e.except(err)
		}
		if obj == nil && !cmd.nullableArg(i) {
			return nil, "", e.exceptf("Invalid token resolution", input, "Expected type: "+variant.Name+". From tokens: "+strings.Join(toks, " "))
		}

		if atVarArgs {
			variadic = append(variadic, obj)
		} else {
			objs[i] = obj
		}
		if obj != nil {
			inputs = append(inputs, input)
		}
	}
	if cmd.varArgs && !varArgArray && nArgs > 0 {
		objs[nArgs-1] = variadic
	}
	return objs, strings.Join(inputs, ", "), nil
}

// preParse expands unpacked tokens into the elements of their value.
func (e *Engine) preParse(toks []string, self variables.Variable) ([]string, error) {
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		mods, rest := variables.SplitMods(tok)
		if len(mods) != 1 {
			out = append(out, tok)
			continue
		}
		switch mods[0] {
		case variables.ModNoUnpack:
			out = append(out, rest)
		case variables.ModUnpack:
			v, err := e.resolve(rest, false, self)
			if err != nil {
				return nil, err
			}
			switch v := v.(type) {
			case *variables.Array:
				for _, elem := range v.Elems() {
					out = append(out, elem.Raw())
				}
			case *variables.TokenGroup:
				for _, elem := range v.Elems() {
					out = append(out, elem.Raw())
				}
			default:
				out = append(out, v.Raw())
			}
		default:
			out = append(out, tok)
		}
	}
	return out, nil
}

// parseBundle parses every element of an array token as one variadic argument.
func (e *Engine) parseBundle(cmd *Command, argType *ArgType, toks []string, i int, self variables.Variable) ([]any, string, error) {
	if len(toks) != 1 {
		return nil, "", e.exceptf("Invalid var-arg array resolution", strings.Join(toks, " "), "Expected a single array token")
	}
	v, err := e.resolve(toks[0], false, self)
	if err != nil {
		return nil, "", err
	}
	arr, ok := v.(*variables.Array)
	if !ok {
		return nil, "", e.exceptf("Invalid var-arg array resolution", v.Raw(), "Expected type: ["+argType.Name+"]. From tokens: "+toks[0])
	}
	bundle := make([]any, 0, arr.Len())
	for _, elem := range arr.Elems() {
		elemToks := []variables.Variable{elem}
		if group, ok := elem.(*variables.TokenGroup); ok && argType.Variant(1) == nil {
			elemToks = group.Elems()
		}
		variant := argType.Variant(len(elemToks))
		if variant == nil {
			return nil, "", e.exceptf("Invalid var-arg array resolution", elem.Raw(), "Expected type: "+argType.Name)
		}
		obj, err := variant.Parse(e, elemToks)
		if err != nil {
			return nil, "", e.except(err)
		}
		if obj == nil && !cmd.nullableArg(i) {
			return nil, "", e.exceptf("Invalid var-arg array resolution", elem.Raw(), "Expected type: "+variant.Name)
		}
		bundle = append(bundle, obj)
	}
	return bundle, arr.Raw(), nil
}
