package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiFaint = "\033[2m"

	fieldColor = "\033[38;2;148;163;184m"
	textColor  = "\033[38;2;226;232;240m"
)

//nolint:gochecknoglobals // palette is a static lookup shared across encoder instances.
var levelPalette = map[zapcore.Level]string{
	zapcore.DebugLevel: "\033[38;2;129;140;248m",
	zapcore.InfoLevel:  "\033[38;2;16;185;129m",
	zapcore.WarnLevel:  "\033[38;2;245;158;11m",
	zapcore.ErrorLevel: "\033[38;2;248;113;113m",
	zapcore.FatalLevel: "\033[38;2;217;70;239m",
}

// prettyEncoder wraps zap's JSON encoder to produce colorized, indented
// output suited for terminals.
type prettyEncoder struct {
	zapcore.Encoder
}

// Clone ensures derived loggers keep the pretty encoder wrapper.
func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{Encoder: e.Encoder.Clone()}
}

// newPrettyLogger creates a terminal-friendly logger without caller tracking.
func newPrettyLogger(cfg *zap.Config) *zap.Logger {
	enc := &prettyEncoder{Encoder: zapcore.NewJSONEncoder(cfg.EncoderConfig)}
	core := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), cfg.Level)
	return zap.New(core, zap.ErrorOutput(zapcore.AddSync(os.Stderr)))
}

// EncodeEntry formats a log entry with a colorized header line followed by
// indented JSON fields.
func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	jsonBuf, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}

	raw := append([]byte(nil), jsonBuf.Bytes()...)
	jsonBuf.Reset()

	if _, err = jsonBuf.WriteString(buildHeader(entry)); err != nil {
		return nil, err
	}

	body, err := buildBody(raw)
	if err != nil {
		// fall back to the raw JSON line when the payload cannot be re-rendered
		if _, writeErr := jsonBuf.Write(raw); writeErr != nil {
			return nil, writeErr
		}
		return jsonBuf, nil
	}

	if _, err = jsonBuf.WriteString(body); err != nil {
		return nil, err
	}

	return jsonBuf, nil
}

func buildHeader(entry zapcore.Entry) string {
	ts := entry.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	color, ok := levelPalette[entry.Level]
	if !ok {
		color = textColor
	}

	var b strings.Builder
	b.WriteString(ansiFaint + "[" + ts.Format(time.DateTime) + "]" + ansiReset)
	b.WriteByte(' ')
	b.WriteString(color + ansiBold + strings.ToUpper(entry.Level.String()) + ansiReset)
	if entry.LoggerName != "" {
		b.WriteString(" " + fieldColor + entry.LoggerName + ansiReset)
	}
	if entry.Message != "" && entry.Message != "<nil>" {
		b.WriteString(" " + color + entry.Message + ansiReset)
	}
	b.WriteByte('\n')
	return b.String()
}

// buildBody re-renders the structured fields of the entry as indented JSON,
// dropping the reserved header keys.
func buildBody(raw []byte) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", nil
	}

	payload := make(map[string]json.RawMessage)
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return "", err
	}

	for _, reserved := range []string{messageKey, levelKey, nameKey, timeKey} {
		delete(payload, reserved)
	}

	if len(payload) == 0 {
		return "", nil
	}

	indented, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}

	return fieldColor + string(indented) + ansiReset + "\n", nil
}
