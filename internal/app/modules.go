package app

import (
	"github.com/vk/adapterhub/internal/registry"
	"github.com/vk/adapterhub/modules/env_vars"
	"github.com/vk/adapterhub/modules/http_client"
	"github.com/vk/adapterhub/modules/print"
	"github.com/vk/adapterhub/modules/s3"
	"github.com/vk/adapterhub/modules/socketio"
)

// coreProviders is the definitive list of all provider modules compiled into
// the adapterhub binary. Discovery processes the slice front to back, which
// makes this list the single source of truth for method shadowing order.
var coreProviders = []registry.Provider{
	&env_vars.Module{},
	&print.Module{},
	&http_client.Module{},
	&s3.Module{},
	&socketio.Module{},
}
