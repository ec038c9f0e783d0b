package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/register", handler.Register)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.HandleFunc("POST /v1/auth/logout", handler.Logout)

	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/weeks/{week}/games", handler.ListWeekGames)
	mux.HandleFunc("GET /v1/games/{gameID}", handler.GetGame)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	registerAuthorizedProfileRoutes(mux, handler, verifier)
	registerAuthorizedLeagueRoutes(mux, handler, verifier)
	registerAuthorizedPickRoutes(mux, handler, verifier)
	registerAuthorizedAdminRoutes(mux, handler, verifier)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-week", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncWeekJob)))
	mux.Handle("POST /v1/internal/jobs/sync-range", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncRangeJob)))
	mux.Handle("POST /v1/internal/jobs/sync-all", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncAllJob)))
}

func registerAuthorizedProfileRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMe)))
	mux.Handle("POST /v1/me/password", RequireAuth(verifier, http.HandlerFunc(handler.ChangeMyPassword)))
}

func registerAuthorizedLeagueRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("GET /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.ListMyLeagues)))
	mux.Handle("POST /v1/leagues/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinLeague)))
	mux.Handle("GET /v1/leagues/{leagueID}", RequireAuth(verifier, http.HandlerFunc(handler.GetLeague)))
	mux.Handle("PUT /v1/leagues/{leagueID}/settings", RequireAuth(verifier, http.HandlerFunc(handler.UpdateLeagueSettings)))
	mux.Handle("GET /v1/leagues/{leagueID}/members", RequireAuth(verifier, http.HandlerFunc(handler.ListLeagueMembers)))
	mux.Handle("DELETE /v1/leagues/{leagueID}/members/{userID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveLeagueMember)))
	mux.Handle("POST /v1/leagues/{leagueID}/members/{userID}/reset-password", RequireAuth(verifier, http.HandlerFunc(handler.ResetMemberPassword)))
	mux.Handle("GET /v1/leagues/{leagueID}/requests", RequireAuth(verifier, http.HandlerFunc(handler.ListJoinRequests)))
	mux.Handle("POST /v1/leagues/{leagueID}/requests/{userID}/approve", RequireAuth(verifier, http.HandlerFunc(handler.ApproveJoinRequest)))
	mux.Handle("POST /v1/leagues/{leagueID}/requests/{userID}/reject", RequireAuth(verifier, http.HandlerFunc(handler.RejectJoinRequest)))
	mux.Handle("POST /v1/leagues/{leagueID}/advance-week", RequireAuth(verifier, http.HandlerFunc(handler.AdvancePickWeek)))
	mux.Handle("POST /v1/leagues/{leagueID}/begin-gameweek", RequireAuth(verifier, http.HandlerFunc(handler.BeginGameweek)))
	mux.Handle("GET /v1/leagues/{leagueID}/standings", RequireAuth(verifier, http.HandlerFunc(handler.ListLeagueStandings)))
	mux.Handle("POST /v1/leagues/{leagueID}/settle", RequireAuth(verifier, http.HandlerFunc(handler.SettleLeagueWeek)))
}

func registerAuthorizedPickRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/leagues/{leagueID}/picks", RequireAuth(verifier, http.HandlerFunc(handler.MakePick)))
	mux.Handle("GET /v1/leagues/{leagueID}/picks/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyPickState)))
	mux.Handle("GET /v1/leagues/{leagueID}/picks/me/history", RequireAuth(verifier, http.HandlerFunc(handler.ListMyPicks)))
	mux.Handle("GET /v1/leagues/{leagueID}/picks/week/{week}", RequireAuth(verifier, http.HandlerFunc(handler.ListWeekPicks)))
}

func registerAuthorizedAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("PUT /v1/admin/games/{gameID}/status-override", RequireAuth(verifier, http.HandlerFunc(handler.SetGameStatusOverride)))
	mux.Handle("DELETE /v1/admin/games/{gameID}/status-override", RequireAuth(verifier, http.HandlerFunc(handler.ClearGameStatusOverride)))
}
