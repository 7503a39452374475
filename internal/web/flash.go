package web

import "strings"

func flashMessage(notice string) string {
	switch strings.TrimSpace(notice) {
	case "match_added":
		return "Partido guardado."
	case "match_updated":
		return "Partido actualizado."
	case "match_deleted":
		return "Partido eliminado."
	case "regular_added":
		return "Jugador añadido a los fijos."
	case "regular_removed":
		return "Jugador quitado de los fijos."
	case "logged_out":
		return "Sesión cerrada."
	}
	return ""
}
