package main

import "net/http"

func (app *App) initHandlers() {
	app.R.Post("/admins/create", app.CreateLeagueAdmin)
	app.R.Get("/admins", app.GetLeagueAdmins)
	app.R.Get("/admins/delete", app.DeleteLeagueAdmin)

	app.R.Post("/coaches/create", app.CreateCoach)
	app.R.Get("/coaches", app.GetCoaches)
	app.R.Get("/coaches/delete", app.DeleteCoach)

	app.R.Post("/towns/create", app.CreateTown)
	app.R.Get("/towns", app.GetTowns)
	app.R.Get("/towns/delete", app.DeleteTown)

	app.R.Post("/teams/create", app.CreateTeam)
	app.R.Get("/teams", app.GetTeams)
	app.R.Get("/teams/delete", app.DeleteTeam)

	app.R.Post("/umpires/create", app.CreateUmpire)
	app.R.Get("/umpires", app.GetUmpires)
	app.R.Post("/umpires/update", app.UpdateUmpire)
	app.R.Get("/umpires/delete", app.DeleteUmpire)

	app.R.Post("/availability/set", app.SetAvailability)
	app.R.Get("/availability", app.GetAvailability)
	app.R.Get("/availability/slots", app.GetGameDateSlots)
	app.R.Get("/availability/grid", app.GetAvailabilityGrid)

	app.R.Post("/games/create", app.CreateGame)
	app.R.Post("/games/bulk", app.BulkCreateGames)
	app.R.Get("/games/delete", app.DeleteGame)
	app.R.Post("/games/edit", app.EditGame)
	app.R.Post("/games/complete", app.CompleteGame)
	app.R.Get("/schedule/week", app.GetWeeklySchedule)
	app.R.Get("/schedule/unassigned", app.GetUnassignedGames)

	app.R.Get("/assignments/eligible", app.GetAvailableUmpires)
	app.R.Post("/assignments/create", app.AssignUmpire)
	app.R.Post("/assignments/pay", app.OverridePay)
	app.R.Get("/assignments/mark-paid", app.MarkGameDatePaid)
	app.R.Get("/assignments/mark-unpaid", app.MarkGameDateUnpaid)

	app.R.Get("/payroll/umpires", app.GetPayrollSummary)
	app.R.Get("/payroll/weeks", app.GetWeeklyPayroll)

	app.R.Post("/payments/create", app.CreatePayment)
	app.R.Post("/payments/update", app.UpdatePayment)
	app.R.Get("/payments", app.GetPayments)

	app.R.Get("/payrates", app.GetPayRates)
	app.R.Post("/payrates/create", app.CreatePayRates)

	app.R.Post("/imports", app.ImportCSV)

	app.R.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("I am Healthy"))
	})
}
