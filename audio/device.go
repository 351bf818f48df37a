package audio

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/gordonklaus/portaudio"
)

var deviceTmpl = template.Must(template.New("").Parse(
	`{{. | len}} host APIs: {{range .}}
	Name:                   {{.Name}}
	{{if .DefaultInputDevice}}Default input device:   {{.DefaultInputDevice.Name}}{{end}}
	Devices: {{range .Devices}}{{if .MaxInputChannels}}
		Name:                      {{.Name}}
		MaxInputChannels:          {{.MaxInputChannels}}
		DefaultLowInputLatency:    {{.DefaultLowInputLatency}}
		DefaultHighInputLatency:   {{.DefaultHighInputLatency}}
		DefaultSampleRate:         {{.DefaultSampleRate}}
	{{end}}{{end}}
{{end}}`,
))

// DescribeDevices lists the host APIs and the input capable devices using deviceTmpl.
// portaudio must already be initialized.
func DescribeDevices() (string, error) {
	hs, err := portaudio.HostApis()
	if err != nil {
		return "", fmt.Errorf("error listing host apis: %w", err)
	}
	buf := bytes.NewBuffer([]byte{})
	if err := deviceTmpl.Execute(buf, hs); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PrintDevices initializes portaudio and writes the device listing to stdout.
func PrintDevices() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("error initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	s, err := DescribeDevices()
	if err != nil {
		return err
	}
	fmt.Println(s)
	return nil
}
