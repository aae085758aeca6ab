package app

import (
	"github.com/vk/wasmbundle/internal/registry"
	"github.com/vk/wasmbundle/modules/copystatic"
	"github.com/vk/wasmbundle/modules/htmltemplate"
	"github.com/vk/wasmbundle/modules/provide"
	"github.com/vk/wasmbundle/modules/wasmpack"
)

// coreModules is the definitive list of all step modules that are compiled
// into the wasmbundle binary.
var coreModules = []registry.Module{
	&htmltemplate.Module{},
	&wasmpack.Module{},
	&copystatic.Module{},
	&provide.Module{},
}
