package models

import (
	"net/url"
	"strings"
)

type Character struct {
	ServerID    string `json:"serverId,omitempty"`
	ID          string `json:"characterId"`
	Name        string `json:"characterName"`
	Level       int    `json:"level"`
	JobName     string `json:"jobName,omitempty"`
	JobGrowName string `json:"jobGrowName,omitempty"`
}

// PortraitURL returns the character image served by the upstream CDN.
func (c Character) PortraitURL(imageBaseURL, serverID string) string {
	if c.ServerID != "" {
		serverID = c.ServerID
	}
	return strings.TrimRight(imageBaseURL, "/") + "/servers/" + url.PathEscape(serverID) +
		"/characters/" + url.PathEscape(c.ID) + "?zoom=1"
}

// Server is a game server the character search can target.
type Server struct {
	ID    string
	Label string
}

var Servers = []Server{
	{ID: "cain", Label: "카인"},
	{ID: "diregie", Label: "디레지에"},
	{ID: "siroco", Label: "시로코"},
	{ID: "prey", Label: "프레이"},
	{ID: "casillas", Label: "카시야스"},
	{ID: "hilder", Label: "힐더"},
	{ID: "anton", Label: "안톤"},
	{ID: "bakal", Label: "바칼"},
}

func ServerLabel(id string) string {
	for _, s := range Servers {
		if s.ID == id {
			return s.Label
		}
	}
	return id
}
