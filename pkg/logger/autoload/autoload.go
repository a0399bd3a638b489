// Package autoload initializes the global logger from LOG_* environment
// variables when imported for side effects. It reads ./.env but ignores the
// -env flag, which is not parsed yet during init.
package autoload

import (
	configx "github.com/tanpawarit/Chative-Business-Assistant/pkg/config"
	logx "github.com/tanpawarit/Chative-Business-Assistant/pkg/logger"
)

func init() {
	conf, err := configx.FromEnv[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*conf)
}
