// Command padctl is the host-side configuration console client: it
// opens the board's CDC console, prints telemetry frames as they
// arrive, and accepts a handful of interactive commands to change the
// active USB emulation mode or a player's profile. The identify/
// dictionary-retrieval bootstrap a live command stream would need is
// dropped: this console has no config CRC to negotiate, only a fixed
// frame registry (see consolesink.Registry).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"padcore/consolesink"
	"padcore/hostutil/serial"
	"padcore/protocol"
)

var (
	device = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud   = flag.Int("baud", 115200, "Baud rate (ignored by USB CDC)")
)

func main() {
	flag.Parse()

	fmt.Println("padctl - controller-adapter configuration console")
	fmt.Println("===================================================")

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Connecting to %s...\n", *device)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	transport := protocol.NewHostTransport(port)
	defer transport.Close()
	transport.SetResponseHandler(handleFrame)

	fmt.Println("Connected. Type 'help' for commands, 'quit' to exit.")
	runConsole(transport)
}

func handleFrame(cmdID uint16, data *[]byte) error {
	payload := *data
	switch cmdID {
	case consolesink.FrameProfileState:
		player, profileIndex, comboArmed, err := consolesink.DecodeProfileState(payload)
		if err != nil {
			return err
		}
		fmt.Printf("[profile_state] player=%d profile=%d combo_armed=%v\n", player, profileIndex, comboArmed)
	case consolesink.FrameModeStatus:
		modeID, ready, err := consolesink.DecodeModeStatus(payload)
		if err != nil {
			return err
		}
		fmt.Printf("[mode_status] mode=%d ready=%v\n", modeID, ready)
	case consolesink.FrameComboEvent:
		player, ruleIndex, fired, err := consolesink.DecodeComboEvent(payload)
		if err != nil {
			return err
		}
		fmt.Printf("[combo_event] player=%d rule=%d fired=%v\n", player, ruleIndex, fired)
	default:
		fmt.Printf("[unknown frame %d] %d bytes\n", cmdID, len(payload))
	}
	return nil
}

func runConsole(transport *protocol.HostTransport) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		switch parts[0] {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return
		case "help", "?":
			printHelp()
		case "set_mode":
			if err := runSetMode(transport, parts); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		case "set_profile":
			if err := runSetProfile(transport, parts); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		default:
			fmt.Printf("Unknown command: %s (type 'help')\n", parts[0])
		}
	}
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  set_mode <id>              - Switch the active USB emulation mode")
	fmt.Println("  set_profile <player> <idx>  - Select a player's active profile")
	fmt.Println("  quit/exit/q                 - Exit the program")
	fmt.Println()
}

func runSetMode(transport *protocol.HostTransport, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: set_mode <id>")
	}
	modeID, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid mode id: %w", err)
	}
	if err := transport.SendCommandWithTimeout(consolesink.CommandSetMode, consolesink.EncodeSetMode(uint32(modeID)), 2*time.Second); err != nil {
		return err
	}
	fmt.Println("set_mode sent")
	return nil
}

func runSetProfile(transport *protocol.HostTransport, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: set_profile <player> <index>")
	}
	player, err := strconv.ParseUint(args[1], 10, 8)
	if err != nil {
		return fmt.Errorf("invalid player: %w", err)
	}
	idx, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid profile index: %w", err)
	}
	if err := transport.SendCommandWithTimeout(consolesink.CommandSetProfile, consolesink.EncodeSetProfile(uint8(player), idx), 2*time.Second); err != nil {
		return err
	}
	fmt.Println("set_profile sent")
	return nil
}
