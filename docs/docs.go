// Package docs registers the Swagger 2.0 document served under /docs.
// It is maintained by hand in the layout swag init produces; keep it in step
// with the @Router annotations in internal/api/handler.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "VP Sports"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/matches": {
            "post": {
                "security": [{"ScorerToken": []}],
                "description": "Registers an upcoming cricket match and seeds its default live score.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Create match",
                "parameters": [
                    {"description": "Match setup", "name": "match", "in": "body", "required": true, "schema": {"$ref": "#/definitions/fixture.NewFixture"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.CreateMatchResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/sports/{sport}/matches": {
            "get": {
                "description": "Lists matches for a sport by lifecycle status. Unknown sports return an empty list.",
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "List matches",
                "parameters": [
                    {"type": "string", "example": "cricket", "description": "Sport", "name": "sport", "in": "path", "required": true},
                    {"enum": ["upcoming", "live", "recent", "finished"], "type": "string", "default": "upcoming", "description": "Lifecycle filter", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/fixture.Summary"}}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/matches/{matchID}": {
            "get": {
                "description": "Returns the full match record.",
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Get match",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "matchID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cricket.Fixture"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/matches/{matchID}/start": {
            "post": {
                "security": [{"ScorerToken": []}],
                "description": "Moves an upcoming match to live. Fails with ALREADY_LIVE, ALREADY_FINISHED or NOT_UPCOMING otherwise.",
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Start match",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "matchID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/matches/{matchID}/live": {
            "get": {
                "description": "Returns the stored live-score state, creating the default state if the match has none yet.",
                "produces": ["application/json"],
                "tags": ["live"],
                "summary": "Get live score",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "matchID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/cricket.LiveScore"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            },
            "put": {
                "security": [{"ScorerToken": []}],
                "description": "Replaces the whole live-score state. Absent fields are cleared. A current_status of exactly \"Finished\" also finishes the match.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["live"],
                "summary": "Submit live score",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "matchID", "in": "path", "required": true},
                    {"description": "Full live-score state", "name": "score", "in": "body", "required": true, "schema": {"$ref": "#/definitions/livescore.Payload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.UpdateResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/matches/{matchID}/summary": {
            "get": {
                "description": "Returns formatted scores, batting and bowling sides, on-field players and the display summary. Supports If-None-Match.",
                "produces": ["application/json"],
                "tags": ["live"],
                "summary": "Get match summary",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "matchID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/presenter.View"}},
                    "304": {"description": "Not Modified"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/matches/{matchID}/scorecard": {
            "get": {
                "description": "Returns the compiled scorecard as JSON, or as a printable HTML document with format=html.",
                "produces": ["application/json", "text/html"],
                "tags": ["live"],
                "summary": "Get scorecard",
                "parameters": [
                    {"type": "integer", "description": "Match ID", "name": "matchID", "in": "path", "required": true},
                    {"enum": ["json", "html"], "type": "string", "default": "json", "description": "Output format", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/scorecard.Scorecard"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "cricket.BattingEntry": {
            "type": "object",
            "properties": {
                "player_id": {"type": "integer"},
                "name": {"type": "string"},
                "runs": {"type": "integer"},
                "balls": {"type": "integer"},
                "status": {"type": "string"}
            }
        },
        "cricket.BowlingEntry": {
            "type": "object",
            "properties": {
                "player_id": {"type": "integer"},
                "name": {"type": "string"},
                "balls": {"type": "integer"},
                "runs": {"type": "integer"},
                "wickets": {"type": "integer"}
            }
        },
        "cricket.Fixture": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "team_a_name": {"type": "string"},
                "team_b_name": {"type": "string"},
                "team_a_players": {"type": "array", "items": {"type": "string"}},
                "team_b_players": {"type": "array", "items": {"type": "string"}},
                "overs_per_innings": {"type": "integer"},
                "start_time": {"type": "string"},
                "venue": {"type": "string"},
                "umpires": {"type": "array", "items": {"type": "string"}},
                "match_status": {"type": "string", "enum": ["upcoming", "live", "finished"]},
                "created_at": {"type": "string"}
            }
        },
        "cricket.LiveScore": {
            "type": "object",
            "properties": {
                "match_id": {"type": "integer"},
                "toss_winner": {"type": "string"},
                "toss_decision": {"type": "string", "enum": ["Bat", "Bowl"]},
                "current_status": {"type": "string"},
                "break_status": {"type": "string"},
                "team1_score": {"type": "integer"},
                "team1_wickets": {"type": "integer"},
                "team1_balls": {"type": "integer"},
                "team1_extras": {"type": "integer"},
                "team2_score": {"type": "integer"},
                "team2_wickets": {"type": "integer"},
                "team2_balls": {"type": "integer"},
                "team2_extras": {"type": "integer"},
                "striker_id": {"type": "integer"},
                "non_striker_id": {"type": "integer"},
                "bowler_id": {"type": "integer"},
                "is_first_innings": {"type": "boolean"},
                "target": {"type": "integer"},
                "first_innings_balls": {"type": "integer"},
                "team1_batting": {"type": "array", "items": {"$ref": "#/definitions/cricket.BattingEntry"}},
                "team1_bowling": {"type": "array", "items": {"$ref": "#/definitions/cricket.BowlingEntry"}},
                "team2_batting": {"type": "array", "items": {"$ref": "#/definitions/cricket.BattingEntry"}},
                "team2_bowling": {"type": "array", "items": {"$ref": "#/definitions/cricket.BowlingEntry"}},
                "team1_timeline": {"type": "array", "items": {"type": "string"}},
                "team2_timeline": {"type": "array", "items": {"type": "string"}},
                "summary": {"type": "string"},
                "result": {"type": "string"},
                "last_updated": {"type": "string"}
            }
        },
        "livescore.Payload": {
            "type": "object",
            "properties": {
                "toss_winner": {"type": "string"},
                "toss_decision": {"type": "string", "enum": ["Bat", "Bowl"]},
                "current_status": {"type": "string"},
                "break_status": {"type": "string"},
                "team1_score": {"type": "integer"},
                "team1_wickets": {"type": "integer"},
                "team1_balls": {"type": "integer"},
                "team1_extras": {"type": "integer"},
                "team2_score": {"type": "integer"},
                "team2_wickets": {"type": "integer"},
                "team2_balls": {"type": "integer"},
                "team2_extras": {"type": "integer"},
                "striker_id": {"type": "integer"},
                "non_striker_id": {"type": "integer"},
                "bowler_id": {"type": "integer"},
                "is_first_innings": {"type": "boolean"},
                "target": {"type": "integer"},
                "first_innings_balls": {"type": "integer"},
                "team1_batting": {"type": "array", "items": {"$ref": "#/definitions/cricket.BattingEntry"}},
                "team1_bowling": {"type": "array", "items": {"$ref": "#/definitions/cricket.BowlingEntry"}},
                "team2_batting": {"type": "array", "items": {"$ref": "#/definitions/cricket.BattingEntry"}},
                "team2_bowling": {"type": "array", "items": {"$ref": "#/definitions/cricket.BowlingEntry"}},
                "team1_timeline": {"type": "array", "items": {"type": "string"}},
                "team2_timeline": {"type": "array", "items": {"type": "string"}},
                "summary": {"type": "string"},
                "result": {"type": "string"}
            }
        },
        "fixture.NewFixture": {
            "type": "object",
            "properties": {
                "team_a_name": {"type": "string"},
                "team_b_name": {"type": "string"},
                "team_a_players": {"type": "array", "items": {"type": "string"}},
                "team_b_players": {"type": "array", "items": {"type": "string"}},
                "overs": {"type": "string"},
                "overs_per_innings": {"type": "string"},
                "start_time": {"type": "string"},
                "venue": {"type": "string"},
                "umpires": {"type": "array", "items": {"type": "string"}}
            }
        },
        "fixture.Summary": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "teamA": {"type": "string"},
                "teamB": {"type": "string"},
                "venue": {"type": "string"},
                "date": {"type": "string"},
                "time": {"type": "string"},
                "status": {"type": "string"},
                "teamAScore": {"type": "string"},
                "teamAOvers": {"type": "string"},
                "teamBScore": {"type": "string"},
                "teamBOvers": {"type": "string"},
                "summary": {"type": "string"},
                "result": {"type": "string"}
            }
        },
        "handler.CreateMatchResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "message": {"type": "string"},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.UpdateResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "last_updated": {"type": "string"},
                "finished": {"type": "boolean"},
                "warnings": {"type": "array", "items": {"type": "string"}}
            }
        },
        "presenter.PlayerLine": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "figure": {"type": "string"}
            }
        },
        "presenter.View": {
            "type": "object",
            "properties": {
                "match_id": {"type": "integer"},
                "team_a": {"type": "string"},
                "team_b": {"type": "string"},
                "team_a_score": {"type": "string"},
                "team_a_overs": {"type": "string"},
                "team_b_score": {"type": "string"},
                "team_b_overs": {"type": "string"},
                "batting_team": {"type": "string"},
                "bowling_team": {"type": "string"},
                "striker": {"$ref": "#/definitions/presenter.PlayerLine"},
                "non_striker": {"$ref": "#/definitions/presenter.PlayerLine"},
                "bowler": {"$ref": "#/definitions/presenter.PlayerLine"},
                "innings": {"type": "integer"},
                "target": {"type": "integer"},
                "toss": {"type": "string"},
                "status": {"type": "string"},
                "break_status": {"type": "string"},
                "summary": {"type": "string"},
                "result": {"type": "string"},
                "last_updated": {"type": "string"}
            }
        },
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "detail": {"type": "string"}
                    }
                }
            }
        },
        "scorecard.Innings": {
            "type": "object",
            "properties": {
                "number": {"type": "integer"},
                "batting_team": {"type": "string"},
                "bowling_team": {"type": "string"},
                "batting": {"type": "array", "items": {"$ref": "#/definitions/cricket.BattingEntry"}},
                "bowling": {"type": "array", "items": {"$ref": "#/definitions/cricket.BowlingEntry"}},
                "extras": {"type": "integer"},
                "total": {"type": "string"},
                "overs": {"type": "string"},
                "timeline": {"type": "string"}
            }
        },
        "scorecard.Scorecard": {
            "type": "object",
            "properties": {
                "match_id": {"type": "integer"},
                "team_a": {"type": "string"},
                "team_b": {"type": "string"},
                "venue": {"type": "string"},
                "toss": {"type": "string"},
                "status": {"type": "string"},
                "result": {"type": "string"},
                "target": {"type": "integer"},
                "innings": {"type": "array", "items": {"$ref": "#/definitions/scorecard.Innings"}}
            }
        }
    },
    "securityDefinitions": {
        "ScorerToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:8000",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Scorekeeper API",
	Description:      "Cricket scorekeeping backend: match registry, live-score ingestion from scorer clients, viewer summaries and scorecards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
