package logging

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xoebus/ceflog"
)

type Vendor string
type Product string
type Version string
type Hostname string

// CEFLogger emits decision audit events in the ArcSight Common Event
// Format. At most six custom extensions fit a CEF record; overflow and
// invalid pairs are reported in the msg field rather than dropped silently.
type CEFLogger struct {
	logger   *ceflog.Logger
	hostname string
}

func NewCEFLogger(writer io.Writer, vendor Vendor, product Product, version Version, hostname Hostname) *CEFLogger {
	return &CEFLogger{
		logger:   ceflog.New(writer, string(vendor), string(product), string(version)),
		hostname: string(hostname),
	}
}

func (l *CEFLogger) Log(signature string, name string, args ...CustomExtension) {
	extension := ceflog.Extension{
		ceflog.Pair{Key: "dst", Value: l.hostname},
	}

	counter := 1
	invalidFound := false
	var msgBuffer bytes.Buffer
	for _, ce := range args {
		if (ce.Key == "" || ce.Value == "") && !invalidFound {
			msgBuffer.WriteString("ERROR:invalid-custom-extension;")
			invalidFound = true
		} else {
			extension = append(extension, ceflog.Pair{Key: fmt.Sprintf("cs%dLabel", counter), Value: ce.Key})
			extension = append(extension, ceflog.Pair{Key: fmt.Sprintf("cs%d", counter), Value: ce.Value})
			counter++
			if counter > 6 {
				msgBuffer.WriteString("ERROR:too-many-custom-extensions;")
				break
			}
		}
	}
	if msgBuffer.String() != "" {
		extension = append(extension, ceflog.Pair{Key: "msg", Value: msgBuffer.String()})
	}

	l.logger.LogEvent(signature, name, 0, extension)
}

type CustomExtension struct {
	Key   string
	Value string
}
