package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/edlane/edlane-lms/internal/assessment"
	"github.com/edlane/edlane-lms/internal/roster"
	"github.com/edlane/edlane-lms/internal/schedule"
)

// Every response carries the success discriminator the clients check
// before trusting the payload.

func writeOK(w http.ResponseWriter, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	body := map[string]any{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	_ = json.NewEncoder(w).Encode(body)
}

func writeFail(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}

func writeStoreErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeFail(w, http.StatusNotFound, err.Error())
		return
	}
	log.Printf("store error: %v", err)
	writeFail(w, http.StatusInternalServerError, "internal error")
}

/* ---------------- tests & attempts ---------------- */

// GET /api/test/course/{courseID}
func ListCourseTestsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tests, err := store.ListCourseTests(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"tests": tests})
	}
}

// GET /api/test/student/{studentID}
func ListStudentTestsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tests, err := store.ListStudentTests(r.Context(), chi.URLParam(r, "studentID"))
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"tests": tests})
	}
}

// GET /api/test/{testID}/questions
func GetTestQuestionsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := store.GetQuestions(r.Context(), chi.URLParam(r, "testID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeFail(w, http.StatusNotFound, "test not found")
				return
			}
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"questions": questions})
	}
}

// POST /api/answers
func SubmitAnswersHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var records []assessment.AnswerRecord
		if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
			writeFail(w, http.StatusBadRequest, "bad json")
			return
		}
		if len(records) == 0 {
			writeFail(w, http.StatusBadRequest, "empty submission")
			return
		}
		// Students submit their own attempts; trainers and admins may
		// backfill on a student's behalf.
		claims := ClaimsFromContext(r.Context())
		if claims.Role == "student" {
			for _, rec := range records {
				if rec.StudentID != claims.Sub {
					writeFail(w, http.StatusForbidden, "cannot submit for another student")
					return
				}
			}
		}
		if err := store.InsertAnswers(r.Context(), records); err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"message": "answers recorded"})
	}
}

// GET /api/test/{testID}/student/{studentID}/answers
func GetSubmittedAnswersHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := store.GetSubmittedAnswers(r.Context(), chi.URLParam(r, "testID"), chi.URLParam(r, "studentID"))
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		data := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			data = append(data, map[string]any{
				"question": row.Question,
				"submitted_answer": map[string]string{
					"id":     row.AnswerID,
					"answer": row.Value,
				},
			})
		}
		writeOK(w, map[string]any{"data": data})
	}
}

// POST /api/results/finalize/{testID}/mark_and_finalize
func FinalizeResultHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p assessment.FinalizePayload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeFail(w, http.StatusBadRequest, "bad json")
			return
		}
		p.TestID = chi.URLParam(r, "testID")
		if strings.TrimSpace(p.StudentID) == "" {
			writeFail(w, http.StatusBadRequest, "student_id required")
			return
		}
		if err := store.FinalizeResult(r.Context(), p); err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"message": "result finalized"})
	}
}

// GET /api/test/{testID}/student/{studentID}/result
func GetResultsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		testID := chi.URLParam(r, "testID")
		studentID := chi.URLParam(r, "studentID")
		// Students may only read their own results.
		claims := ClaimsFromContext(r.Context())
		if claims.Role == "student" && claims.Sub != studentID {
			writeFail(w, http.StatusForbidden, "forbidden")
			return
		}
		rows, err := store.GetResults(r.Context(), testID, studentID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeFail(w, http.StatusNotFound, "result not finalized yet")
				return
			}
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"questions": rows})
	}
}

/* ---------------- roster ---------------- */

func ListBatchesHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		batches, err := store.ListBatches(r.Context())
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"batches": batches})
	}
}

func CreateBatchHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var b roster.Batch
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil || strings.TrimSpace(b.Name) == "" {
			writeFail(w, http.StatusBadRequest, "bad json")
			return
		}
		created, err := store.CreateBatch(r.Context(), b)
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"batch": created})
	}
}

func UpdateBatchHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var b roster.Batch
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			writeFail(w, http.StatusBadRequest, "bad json")
			return
		}
		b.ID = chi.URLParam(r, "batchID")
		if err := store.UpdateBatch(r.Context(), b); err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"message": "batch updated"})
	}
}

func DeleteBatchHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteBatch(r.Context(), chi.URLParam(r, "batchID")); err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"message": "batch deleted"})
	}
}

func ListTrainersHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		trainers, err := store.ListTrainers(r.Context())
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"trainers": trainers})
	}
}

func ListBatchStudentsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := store.ListBatchStudents(r.Context(), chi.URLParam(r, "batchID"))
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"students": students})
	}
}

/* ---------------- attendance & webinars ---------------- */

func GetAttendanceHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := strings.TrimSpace(r.URL.Query().Get("date"))
		if date == "" {
			writeFail(w, http.StatusBadRequest, "date required")
			return
		}
		sheet, err := store.GetAttendance(r.Context(), chi.URLParam(r, "batchID"), date)
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"sheet": sheet})
	}
}

func SaveAttendanceHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sheet schedule.AttendanceSheet
		if err := json.NewDecoder(r.Body).Decode(&sheet); err != nil {
			writeFail(w, http.StatusBadRequest, "bad json")
			return
		}
		if sheet.BatchID == "" || sheet.Date == "" {
			writeFail(w, http.StatusBadRequest, "batch_id and date required")
			return
		}
		if err := store.SaveAttendance(r.Context(), sheet); err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"message": "attendance saved"})
	}
}

func ListWebinarsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		webinars, err := store.ListWebinars(r.Context(), chi.URLParam(r, "batchID"))
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"webinars": webinars})
	}
}

func CreateWebinarHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var wb schedule.Webinar
		if err := json.NewDecoder(r.Body).Decode(&wb); err != nil || strings.TrimSpace(wb.Title) == "" {
			writeFail(w, http.StatusBadRequest, "bad json")
			return
		}
		created, err := store.CreateWebinar(r.Context(), wb)
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"webinar": created})
	}
}

func CancelWebinarHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.CancelWebinar(r.Context(), chi.URLParam(r, "webinarID")); err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"message": "webinar cancelled"})
	}
}

/* ---------------- course content ---------------- */

func GetSyllabusHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		units, err := store.GetSyllabus(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"units": units})
	}
}

func GetTopicsHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topics, err := store.GetTopics(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"topics": topics})
	}
}

func GetExercisesHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exercises, err := store.GetExercises(r.Context(), chi.URLParam(r, "courseID"))
		if err != nil {
			writeStoreErr(w, err)
			return
		}
		writeOK(w, map[string]any{"exercises": exercises})
	}
}
