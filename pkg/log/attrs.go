package log

import "log/slog"

func FlowID[T ~string](id T) slog.Attr {
	return slog.String("flow_id", string(id))
}

func PhaseID[T ~string](id T) slog.Attr {
	return slog.String("phase_id", string(id))
}

func StepID[T ~string](id T) slog.Attr {
	return slog.String("step_id", string(id))
}

func ProjectID[T ~string](id T) slog.Attr {
	return slog.String("project_id", string(id))
}

func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

func Status(code int) slog.Attr {
	return slog.Int("status", code)
}

func Tool(name string) slog.Attr {
	return slog.String("tool", name)
}

func Error(err error) slog.Attr {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return slog.String("error", msg)
}

func ErrorString(msg string) slog.Attr {
	return slog.String("error", msg)
}
