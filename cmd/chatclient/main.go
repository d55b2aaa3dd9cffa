// Command chatclient is a terminal client for the chat socket. It joins
// under a username, prints incoming events and sends every stdin line of
// the form "recipient: text" as a text message.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"DirectChat/models"
	"DirectChat/pkg/realtime"

	"github.com/gorilla/websocket"
)

func main() {
	addr := flag.String("addr", "localhost:3000", "server host:port")
	user := flag.String("user", "", "username to join as")
	flag.Parse()
	if *user == "" {
		log.Fatal("-user is required")
	}

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("dial %s: %v", u.String(), err)
	}
	defer conn.Close()

	if err := write(conn, realtime.EventJoin, *user); err != nil {
		log.Fatalf("join: %v", err)
	}

	go readLoop(conn)

	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		to, text, ok := strings.Cut(sc.Text(), ":")
		if !ok || strings.TrimSpace(text) == "" {
			fmt.Fprintln(os.Stderr, `usage: recipient: message`)
			continue
		}
		ev := realtime.PrivateMessageEvent{To: strings.TrimSpace(to), Message: strings.TrimSpace(text), Type: models.KindText}
		if err := write(conn, realtime.EventPrivateMessage, ev); err != nil {
			log.Fatalf("send: %v", err)
		}
	}
}

func write(conn *websocket.Conn, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return conn.WriteJSON(realtime.Envelope{Event: event, Data: payload})
}

func readLoop(conn *websocket.Conn) {
	for {
		var env realtime.Envelope
		if err := conn.ReadJSON(&env); err != nil {
			log.Printf("connection closed: %v", err)
			os.Exit(0)
		}
		switch env.Event {
		case realtime.EventPrivateMessage:
			var msg realtime.IncomingMessageEvent
			if json.Unmarshal(env.Data, &msg) == nil {
				fmt.Printf("[%s] %s: %s\n", msg.Type, msg.From, msg.Message)
			}
		case realtime.EventUserList:
			var users []string
			if json.Unmarshal(env.Data, &users) == nil {
				fmt.Printf("online: %s\n", strings.Join(users, ", "))
			}
		}
	}
}
