package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/scajl/debugs"
	"github.com/reusee/scajl/scajlconfigs"
	"github.com/reusee/scajl/scripts"
)

type Module struct {
	dscope.Module
	Scripts scripts.Module
	Debugs  debugs.Module
	Configs scajlconfigs.Module
}
