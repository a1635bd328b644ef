package server

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter assembles the dev backend's route tree. CORS is layered on by
// the caller so origins stay a deployment concern.
func NewRouter(dbh *sql.DB, store *Store, authSvc *AuthService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Post("/api/auth/login", LoginHandler(dbh, authSvc))

	r.Group(func(pr chi.Router) {
		pr.Use(JWTMiddleware(authSvc))

		// Assessment workflow
		pr.With(Require("test:list")).
			Get("/api/test/course/{courseID}", ListCourseTestsHandler(store))
		pr.With(Require("test:list")).
			Get("/api/test/student/{studentID}", ListStudentTestsHandler(store))
		pr.With(RequireAny("test:take", "answers:view")).
			Get("/api/test/{testID}/questions", GetTestQuestionsHandler(store))
		pr.With(Require("test:take")).
			Post("/api/answers", SubmitAnswersHandler(store))
		pr.With(Require("answers:view")).
			Get("/api/test/{testID}/student/{studentID}/answers", GetSubmittedAnswersHandler(store))
		pr.With(Require("result:finalize")).
			Post("/api/results/finalize/{testID}/mark_and_finalize", FinalizeResultHandler(store))
		pr.With(RequireAny("result:view-own", "result:view-all")).
			Get("/api/test/{testID}/student/{studentID}/result", GetResultsHandler(store))

		// Batch / trainer / student administration
		pr.With(RequireAny("batch:view", "batch:manage")).
			Get("/api/batch", ListBatchesHandler(store))
		pr.With(Require("batch:manage")).
			Post("/api/batch", CreateBatchHandler(store))
		pr.With(Require("batch:manage")).
			Put("/api/batch/{batchID}", UpdateBatchHandler(store))
		pr.With(Require("batch:manage")).
			Delete("/api/batch/{batchID}", DeleteBatchHandler(store))
		pr.With(RequireAny("batch:view", "batch:manage")).
			Get("/api/batch/{batchID}/students", ListBatchStudentsHandler(store))
		pr.With(RequireAny("batch:view", "batch:manage")).
			Get("/api/trainer", ListTrainersHandler(store))

		// Attendance
		pr.With(Require("attendance:mark")).
			Get("/api/attendance/batch/{batchID}", GetAttendanceHandler(store))
		pr.With(Require("attendance:mark")).
			Post("/api/attendance", SaveAttendanceHandler(store))

		// Webinars
		pr.With(RequireAny("webinar:manage", "content:view")).
			Get("/api/webinar/batch/{batchID}", ListWebinarsHandler(store))
		pr.With(Require("webinar:manage")).
			Post("/api/webinar", CreateWebinarHandler(store))
		pr.With(Require("webinar:manage")).
			Delete("/api/webinar/{webinarID}", CancelWebinarHandler(store))

		// Course content
		pr.With(Require("content:view")).
			Get("/api/course/{courseID}/syllabus", GetSyllabusHandler(store))
		pr.With(Require("content:view")).
			Get("/api/course/{courseID}/topics", GetTopicsHandler(store))
		pr.With(Require("content:view")).
			Get("/api/course/{courseID}/exercises", GetExercisesHandler(store))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	return r
}
