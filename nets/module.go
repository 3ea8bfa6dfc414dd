package nets

import (
	"github.com/reusee/dscope"
	"github.com/reusee/scajl/configs"
	"github.com/reusee/scajl/logs"
)

type Module struct {
	dscope.Module
	Configs configs.Module
	Logs    logs.Module
}
