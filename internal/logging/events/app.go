package events

import "github.com/atomicstack/keyring-tui/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("app.stop", payload)
}

func (AppTracer) Resize(width, height int, minimized bool) {
	logging.Trace("app.resize", map[string]interface{}{"width": width, "height": height, "minimized": minimized})
}
