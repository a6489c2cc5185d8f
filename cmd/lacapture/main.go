// lacapture composes a capture-start command for a logic analyzer, validates
// it against the device capability limits, and prints (or transmits) the
// framed wire bytes.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/seabright/logicport/internal/capture"
	"github.com/seabright/logicport/internal/config"
	"github.com/seabright/logicport/internal/protocol"
	"github.com/seabright/logicport/internal/transport"
	"github.com/seabright/logicport/internal/trigger"
)

var (
	configPath = flag.String("config", "", "Path to device capability JSON (required)")
	channels   = flag.String("channels", "0,1,2,3", "Comma separated capture channel numbers")
	frequency  = flag.Int("freq", capture.DefaultFrequency, "Sample frequency in Hz")
	preSamples = flag.Int("pre", 512, "Pre-trigger sample count")
	postSamp   = flag.Int("post", capture.DefaultPostTriggerSamples, "Post-trigger sample count")

	triggerKind    = flag.String("trigger", "edge", "Trigger kind: edge, blast, fast or complex")
	triggerChannel = flag.Int("trigger-channel", 0, "Trigger channel (edge/blast) or first pattern channel")
	inverted       = flag.Bool("inverted", false, "Trigger on the falling edge (edge/blast only)")
	pattern        = flag.String("pattern", "", "Binary trigger pattern for fast/complex triggers")
	burstCount     = flag.Int("burst", 0, "Burst count 1-254; enables looped capture (edge only)")
	measureBursts  = flag.Bool("measure-bursts", false, "Ask the device to report burst gap timing")

	serialPath = flag.String("port", "", "Serial device to transmit on (prints hex when empty)")
	baudRate   = flag.Int("baud", 0, "Serial baud rate (0 = default)")
	tcpAddr    = flag.String("tcp", "", "Device TCP address host:port to transmit on")

	wifiAP   = flag.String("wifi-ap", "", "Send a network configuration for this access point instead of a capture")
	wifiPass = flag.String("wifi-pass", "", "Access point password")
	wifiIP   = flag.String("wifi-ip", "", "Static IP address for the device")
	wifiPort = flag.Int("wifi-port", 4045, "TCP port the device should listen on")
)

func main() {
	flag.Parse()

	if *configPath == "" {
		log.Fatal("-config is required")
	}
	cfg, err := config.LoadDeviceConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load device config: %v", err)
	}
	caps := cfg.Capabilities()

	var payload []byte
	if *wifiAP != "" {
		payload = buildNetworkConfig()
	} else {
		payload = buildCaptureRequest(caps)
	}

	frame := protocol.Frame(payload)
	fmt.Println(hex.EncodeToString(frame))

	if *serialPath == "" && *tcpAddr == "" {
		return
	}
	port, err := openPort()
	if err != nil {
		log.Fatal(err)
	}
	sender := transport.NewSender(port)
	defer sender.Close()
	if err := sender.Send(payload); err != nil {
		log.Fatalf("transmit failed: %v", err)
	}
}

func buildCaptureRequest(caps trigger.DeviceCapabilities) []byte {
	session := capture.NewSession()
	session.Frequency = *frequency
	session.PreTriggerSamples = *preSamples
	session.PostTriggerSamples = *postSamp
	for _, ch := range parseChannels(*channels) {
		session.CaptureChannels = append(session.CaptureChannels, &capture.AnalyzerChannel{ChannelNumber: ch})
	}

	var r trigger.ValidationResult
	switch *triggerKind {
	case "edge", "blast":
		r = trigger.ApplyEdgeTrigger(session, trigger.EdgeTriggerConfig{
			Channel:       *triggerChannel,
			Inverted:      *inverted,
			Blast:         *triggerKind == "blast",
			Burst:         *burstCount > 0,
			BurstCount:    *burstCount,
			MeasureBursts: *measureBursts,
		})
	case "fast", "complex":
		r = trigger.ApplyPatternTrigger(session, trigger.PatternTriggerConfig{
			FirstChannel: *triggerChannel,
			Pattern:      *pattern,
			Fast:         *triggerKind == "fast",
		})
	default:
		log.Fatalf("unknown trigger kind %q", *triggerKind)
	}
	if !r.Valid {
		log.Fatalf("trigger configuration rejected (%s): %s", r.Code, r.Message)
	}

	if r = trigger.ValidateSettings(caps, session); !r.Valid {
		log.Fatalf("capture settings rejected (%s): %s", r.Code, r.Message)
	}

	if offset := trigger.TriggerDelayOffset(caps, session); offset != 0 {
		log.Printf("pattern trigger pipeline compensation: %d samples", offset)
	}
	return trigger.ComposeRequest(caps, session)
}

func buildNetworkConfig() []byte {
	nc := protocol.NetworkConfig{
		AccessPointName: *wifiAP,
		Password:        *wifiPass,
		IPAddress:       *wifiIP,
		Port:            uint16(*wifiPort),
	}
	return nc.Encode()
}

func openPort() (transport.DevicePort, error) {
	if *serialPath != "" {
		return transport.OpenSerial(*serialPath, *baudRate)
	}
	return transport.OpenTCP(*tcpAddr, 0)
}

func parseChannels(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			log.Fatalf("invalid channel %q", part)
		}
		out = append(out, n)
	}
	return out
}
