package events

import "github.com/atomicstack/keyring-tui/internal/logging"

type CommandTracer struct{}

type PromptTracer struct{}

type FilterTracer struct{}

type EngineTracer struct{}

type ProcessTracer struct{}

type ClipboardTracer struct{}

type WatcherTracer struct{}

var (
	Command   = CommandTracer{}
	Prompt    = PromptTracer{}
	Filter    = FilterTracer{}
	Engine    = EngineTracer{}
	Process   = ProcessTracer{}
	Clipboard = ClipboardTracer{}
	Watcher   = WatcherTracer{}
)

func (CommandTracer) Run(kind, label string) {
	logging.Trace("command.run", map[string]interface{}{"kind": kind, "label": label})
}

func (CommandTracer) Confirm(label string) {
	logging.Trace("command.confirm", map[string]interface{}{"label": label})
}

func (CommandTracer) Cancel(label string) {
	logging.Trace("command.cancel", map[string]interface{}{"label": label})
}

func (CommandTracer) Invalid(input string, err error) {
	logging.Trace("command.invalid", map[string]interface{}{"input": input, "error": err.Error()})
}

func (CommandTracer) Complete(input, completed string) {
	logging.Trace("command.complete", map[string]interface{}{"input": input, "completed": completed})
}

func (PromptTracer) Output(kind int, message string) {
	logging.Trace("prompt.output", map[string]interface{}{"type": kind, "message": message})
}

func (PromptTracer) Expire() {
	logging.Trace("prompt.expire", nil)
}

func (PromptTracer) Entry(text string, cursor int) {
	logging.Trace("prompt.entry", map[string]interface{}{"text": text, "cursor": cursor})
}

func (FilterTracer) Apply(query string, visible, total int) {
	logging.Trace("filter.apply", map[string]interface{}{"query": query, "visible": visible, "total": total})
}

func (FilterTracer) Cleared(restored int) {
	logging.Trace("filter.clear", map[string]interface{}{"restored": restored})
}

func (EngineTracer) Call(op string, args map[string]interface{}) {
	logging.Trace("engine."+op, args)
}

func (EngineTracer) Error(op string, err error) {
	if err == nil {
		return
	}
	logging.Trace("engine.error", map[string]interface{}{"op": op, "error": err.Error()})
}

func (EngineTracer) Refresh(counts map[string]int) {
	logging.Trace("engine.refresh", map[string]interface{}{"counts": counts})
}

func (ProcessTracer) Start(program string, args []string) {
	logging.Trace("process.start", map[string]interface{}{"program": program, "args": args})
}

func (ProcessTracer) Exit(program string, err error) {
	payload := map[string]interface{}{"program": program}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("process.exit", payload)
}

func (ClipboardTracer) Write(target string, size int) {
	logging.Trace("clipboard.write", map[string]interface{}{"target": target, "bytes": size})
}

func (ClipboardTracer) Read(size int) {
	logging.Trace("clipboard.read", map[string]interface{}{"bytes": size})
}

func (ClipboardTracer) Unavailable(op string) {
	logging.Trace("clipboard.unavailable", map[string]interface{}{"op": op})
}

func (WatcherTracer) Poll(signature string, err error) {
	payload := map[string]interface{}{"signature": signature}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("watcher.poll", payload)
}

func (WatcherTracer) Changed(previous, current string) {
	logging.Trace("watcher.changed", map[string]interface{}{"previous": previous, "current": current})
}
