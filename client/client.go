package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"

	"github.com/crazinneeees/svetofor/infrastructure/ws"
)

// Exit codes for the client application.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Config defines the client-side environment variables.
type Config struct {
	ServerAddress string `env:"SIGNAL_SERVER_ADDR,default=localhost:8080"`
	DisplayName   string `env:"SIGNAL_DISPLAY_NAME,default=watcher"`
	LogLevel      string `env:"LOG_LEVEL,required=true"`
}

func main() {
	// The main function manages the OS exit code based on run()'s return.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Client error: %v", err)
	}
	os.Exit(code)
}

// run handles the WebSocket client lifecycle, configuration loading, and frame rendering.
// This pattern ensures clean resource management and error propagation.
func run() (int, error) {
	// 1. Load configuration from environment variables.
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Setup context to handle termination signals (Ctrl+C).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Establish the WebSocket connection to the signal server.
	endpoint := url.URL{
		Scheme: "ws",
		Host:   config.ServerAddress,
		Path:   "/ws/" + url.PathEscape(config.DisplayName),
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint.String(), nil)
	if err != nil {
		return exitRuntime, fmt.Errorf("could not connect to server at %s: %w", config.ServerAddress, err)
	}
	// Defer ensures the connection is closed even if the read loop fails later.
	defer func() {
		log.Info("Closing connection...")
		_ = conn.Close()
	}()

	// Closing the connection is the only way to unblock a pending read.
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	header := fmt.Sprintf("  ====== %s watching the signal at %s ======", config.DisplayName, config.ServerAddress)
	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render(header))

	// 4. Command loop.
	// Reads stdin so a promoted client can drive the lamp without restarting.
	go commandLoop(conn, config.ServerAddress)

	// 5. Frame reception loop.
	// This loop runs until the context is canceled or the server closes the connection.
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			// Normal exit if the user triggered a shutdown.
			if ctx.Err() != nil {
				log.Info("Stopping client...")
				return exitOK, nil
			}
			return exitRuntime, fmt.Errorf("connection lost: %w", err)
		}
		render(raw)
	}
}

// commandLoop accepts one command per line until stdin closes.
func commandLoop(conn *websocket.Conn, serverAddress string) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch line {
		case "":
			continue
		case "red", "yellow", "green", "none":
			if err := conn.WriteJSON(ws.InboundFrame{Type: "color_change", Color: line}); err != nil {
				return
			}
		case "history":
			if err := printHistory(serverAddress); err != nil {
				fmt.Println(color.Red.Sprintf("history unavailable: %v", err))
			}
		default:
			fmt.Println("Commands: red | yellow | green | none | history")
		}
	}
}

// render displays one server frame on the terminal.
func render(raw []byte) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return
	}

	switch envelope.Type {
	case "state_update":
		var frame ws.StateUpdate
		if err := json.Unmarshal(raw, &frame); err != nil {
			return
		}
		fmt.Printf("%s  %s  controller: %s\n", frame.Timestamp, renderLamp(frame.Color), renderController(frame.ControllerID))
		if frame.IsController {
			fmt.Println(color.Green.Sprint("You control the signal. Type red, yellow, green or none."))
		}
	case "color_change":
		var frame ws.ColorChange
		if err := json.Unmarshal(raw, &frame); err != nil {
			return
		}
		fmt.Printf("%s  %s\n", frame.Timestamp, renderLamp(frame.Color))
	case "user_update":
		var frame ws.UserUpdate
		if err := json.Unmarshal(raw, &frame); err != nil {
			return
		}
		fmt.Println(color.Gray.Sprintf("%d watching, controller: %s", frame.TotalUsers, renderController(frame.ControllerID)))
	}
}

// renderLamp draws the three bulbs with only the active one lit.
func renderLamp(current string) string {
	bulbs := []struct {
		name  string
		style color.Color
	}{
		{"red", color.Red},
		{"yellow", color.Yellow},
		{"green", color.Green},
	}

	parts := make([]string, 0, len(bulbs))
	for _, bulb := range bulbs {
		if bulb.name == current {
			parts = append(parts, bulb.style.Sprint("⬤"))
		} else {
			parts = append(parts, color.Gray.Sprint("○"))
		}
	}
	return strings.Join(parts, " ")
}

func renderController(id *string) string {
	if id == nil {
		return "nobody"
	}
	return *id
}

// printHistory fetches the persisted transitions and prints them as a table.
func printHistory(serverAddress string) error {
	resp, err := http.Get(fmt.Sprintf("http://%s/history", serverAddress))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var history ws.HistoryResponse
	if err := json.NewDecoder(resp.Body).Decode(&history); err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Time", "Color", "Actor", "ID"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for _, transition := range history.Transitions {
		displayID := transition.ID
		if len(displayID) > 8 {
			displayID = displayID[:8]
		}
		table.Append([]string{
			transition.At.Format("15:04:05"),
			transition.Color,
			transition.Actor,
			displayID,
		})
	}
	table.Render()
	return nil
}
