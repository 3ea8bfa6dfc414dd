package variables

import (
	"strings"

	"github.com/reusee/scajl/syntaxes"
)

// Resolve turns a token into a variable.
// raw is the default for tokens without a raw or unraw modifier.
// self is the container the token is written in, or nil.
func Resolve(ctx Context, input string, raw bool, self Variable) (Variable, error) {
	input = strings.TrimSpace(input)
	if input == NullText {
		return Null, nil
	}
	if IsNumber(input) {
		return ValueOf(input), nil
	}

	mods, modless := SplitMods(input)
	if len(mods) > 1 {
		return nil, errorf("Multiple modifiers on token", input, "at most one modifier may be applied")
	}
	mod := ModNone
	if len(mods) == 1 {
		mod = mods[0]
	}
	switch mod {
	case ModUnpack, ModNoUnpack:
		return nil, errorf("Illegal modifier", input, "unpack modifiers are only valid on command arguments")
	case ModRaw:
		raw = true
	case ModUnraw:
		raw = false
	}

	if !raw && mod != ModRef {
		if parts := syntaxes.Access(modless); len(parts) > 1 {
			acc, err := accessPath(ctx, parts, self)
			if err != nil {
				return nil, err
			}
			v, err := acc.Get()
			if err != nil {
				return nil, err
			}
			if mod == ModRawContents {
				v = v.Clone()
			}
			return v, nil
		}
	}

	if modless != "" {
		src := source{
			input:   input,
			modless: modless,
		}
		switch modless[0] {

		case syntaxes.Quote:
			if !syntaxes.Wraps(modless) {
				return nil, errorf("Malformed string", input, "")
			}
			if mod != ModNone {
				return nil, errorf("Modifier on string literal", input, "")
			}
			return &String{
				source: src,
				text:   syntaxes.Unescape(syntaxes.TrimString(modless)),
			}, nil

		case '[':
			if !syntaxes.Wraps(modless) {
				return nil, errorf("Malformed array", input, "")
			}
			if mod != ModNone {
				return nil, errorf("Modifier on container literal", input, "")
			}
			if syntaxes.Contains(syntaxes.Unpack(modless), MapKeyEq, 1) {
				return resolveMap(ctx, src)
			}
			return resolveArray(ctx, src)

		case '(':
			if !syntaxes.Wraps(modless) {
				return nil, errorf("Malformed token group", input, "")
			}
			if mod == ModRef {
				return nil, errorf("Modifier on token group", input, "")
			}
			return resolveGroup(ctx, src, raw)

		case '{':
			if !syntaxes.Wraps(modless) {
				return nil, errorf("Malformed executable", input, "")
			}
			if mod != ModNone && mod != ModRef {
				return nil, errorf("Modifier on executable", input, "only the reference modifier applies")
			}
			x := &Executable{
				source: src,
				Body:   syntaxes.TrimExecutable(modless),
				Self:   self,
			}
			if mod == ModRef {
				return x, nil
			}
			return ctx.RunExecutable(x)
		}
	}

	if raw {
		return &Value{
			source: source{
				input:   input,
				modless: modless,
			},
			text: modless,
		}, nil
	}

	if mod == ModRef {
		if !LegalName(modless) {
			return nil, errorf("Illegal reference name", input, "")
		}
		return &Reference{
			source: source{
				input:   input,
				modless: modless,
			},
			name: modless,
		}, nil
	}

	if modless == SelfKey {
		if self == nil {
			return nil, errorf("Self reference outside of a container", input, "")
		}
		return self, nil
	}

	v := ctx.Lookup(modless)
	if v == nil {
		return &Value{
			source: source{
				input:   input,
				modless: modless,
			},
			text: modless,
		}, nil
	}
	if mod == ModRawContents {
		return v.Clone(), nil
	}
	return v, nil
}

func resolveArray(ctx Context, src source) (*Array, error) {
	a := &Array{
		source: src,
	}
	for _, elem := range syntaxes.Elements(src.modless) {
		v, err := Resolve(ctx, elem, false, a)
		if err != nil {
			return nil, err
		}
		a.Append(v)
	}
	return a, nil
}

func resolveMap(ctx Context, src source) (*Map, error) {
	m := &Map{
		source: src,
		vals:   make(map[string]Variable),
	}
	for _, elem := range syntaxes.Elements(src.modless) {
		kv := syntaxes.SplitOn(elem, MapKeyEq, 2)
		if len(kv) != 2 {
			return nil, errorf("Malformed map entry", elem, "expecting key=value")
		}
		k, err := Resolve(ctx, kv[0], true, m)
		if err != nil {
			return nil, err
		}
		key, err := k.Val(ctx)
		if err != nil {
			return nil, err
		}
		v, err := Resolve(ctx, kv[1], false, m)
		if err != nil {
			return nil, err
		}
		m.Put(key, v)
	}
	return m, nil
}

func resolveGroup(ctx Context, src source, raw bool) (*TokenGroup, error) {
	g := &TokenGroup{
		source: src,
	}
	for _, tok := range syntaxes.Tokens(syntaxes.Unpack(src.modless)) {
		v, err := Resolve(ctx, tok, raw, nil)
		if err != nil {
			return nil, err
		}
		g.elems = append(g.elems, v)
	}
	return g, nil
}
