package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		log.Debug("\tws origin: ", r.Host)
		return true
	},
}

// executeCommand dispatches one line of the connection protocol: "s" plays
// a deduced-safe move, "r" a random move, "a" plays the game out. Blank
// lines are ignored.
func executeCommand(session *GameSession, r *http.Request, c string) error {
	switch strings.TrimSpace(c) {
	case "":
		return nil
	case "s":
		return session.stepSafe(r.Context())
	case "r":
		return session.stepRandom(r.Context())
	case "a":
		return session.auto(r.Context())
	}
	return errors.New("unknown command")
}

func handleConnectWs(w http.ResponseWriter, r *http.Request) {
	sessionId, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	session, ok := sessions.get(sessionId)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer c.Close()
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				log.Warn("read: ", err)
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}
		text := strings.TrimSpace(string(message))
		log.Debug("\t> ", text)
		for _, cmd := range byPiece(text, "\n") {
			if err := executeCommand(session, r, cmd); err != nil {
				log.Warn("command: ", err)
				if err := c.WriteJSON(map[string]string{
					"error": err.Error(),
				}); err != nil {
					log.Error("write: ", err)
					return
				}
			}
		}
		if err := c.WriteJSON(session); err != nil {
			log.Error("write: ", err)
			break
		}
		log.Debug("\t< <session data>")
	}
}
