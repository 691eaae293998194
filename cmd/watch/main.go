// Console watcher for the control panel state feed. Dials the panel's
// websocket and prints a line whenever the game state changes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/gaips/go-elmo/internal/log"
	"github.com/gaips/go-elmo/pkg/game"
)

func main() {
	var (
		addr     = flag.String("addr", "localhost:8000", "control panel host:port")
		logLevel = flag.String("log-level", "info", "log level")
	)
	flag.Parse()
	log.Init(*logLevel)

	url := fmt.Sprintf("ws://%s/ws/state", *addr)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Error("dial failed", "url", url, "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	log.Info("watching", "url", url)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var snap game.Snapshot
			if err := conn.ReadJSON(&snap); err != nil {
				log.Error("read failed", "error", err)
				return
			}
			printSnapshot(snap)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-done:
	case <-sig:
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		if err := conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
			return
		}
		<-done
	}
}

func printSnapshot(snap game.Snapshot) {
	line := map[string]any{
		"id":      snap.ID,
		"status":  snap.Status,
		"move":    snap.Move,
		"player":  snap.Player,
		"emotion": snap.CurrentEmotion,
		"points":  snap.Points,
	}
	out, err := json.Marshal(line)
	if err != nil {
		return
	}
	fmt.Println(string(out))
}
