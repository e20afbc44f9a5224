package exceptions

import "net/http"

var (
	ErrUserExists         = New(http.StatusBadRequest, "User already exists")
	ErrInvalidCredentials = New(http.StatusBadRequest, "Invalid Credentials")
	ErrUserNotFound       = New(http.StatusNotFound, "User not found")
	ErrInvalidRole        = New(http.StatusBadRequest, "Invalid role")

	ErrProjectNotFound    = New(http.StatusNotFound, "Project not found")
	ErrProjectNotOpen     = New(http.StatusBadRequest, "Project is not open")
	ErrProjectNotAssigned = New(http.StatusBadRequest, "Project is not assigned")
	ErrProjectCompleted   = New(http.StatusBadRequest, "Project is already completed")
	ErrSolverNotFound     = New(http.StatusBadRequest, "Solver not found")
	ErrNotAuthorized      = New(http.StatusUnauthorized, "Not authorized")
	ErrNotAssignedSolver  = New(http.StatusUnauthorized, "Not authorized: You are not the assigned solver")
	ErrRequestAlreadySent = New(http.StatusBadRequest, "Request already sent")
	ErrTaskNotFound       = New(http.StatusNotFound, "Task not found")
	ErrTaskCompleted      = New(http.StatusBadRequest, "Task is already completed")
	ErrSubmissionNotFound = New(http.StatusNotFound, "Submission not found")
	ErrInvalidStatus      = New(http.StatusBadRequest, "Invalid status")
	ErrSubmissionReviewed = New(http.StatusBadRequest, "Submission already reviewed")

	ErrMissingFile  = New(http.StatusBadRequest, "Please upload a ZIP file")
	ErrArchivesOnly = New(http.StatusBadRequest, "Archives only")
	ErrFileTooLarge = New(http.StatusRequestEntityTooLarge, "File too large")
	ErrFileNotFound = New(http.StatusNotFound, "File not found")
	ErrInvalidJSON  = New(http.StatusBadRequest, "Invalid JSON payload")
)
