package errors

import "net/http"

// Ошибки конвейера построения упражнения
var (
	// ErrParse - некорректная инструкция в сырой записи, запись пропускается
	ErrParse = New(
		"PARSE_ERROR",
		"Illegal instruction in raw record",
		http.StatusUnprocessableEntity,
	)

	// ErrBuildValidation - у объекта не заполнены обязательные поля
	ErrBuildValidation = New(
		"BUILD_VALIDATION",
		"Geo entity is incomplete",
		http.StatusUnprocessableEntity,
	)

	ErrGeometryInvalid = New(
		"GEOMETRY_INVALID",
		"Working area polygon is self-intersecting or crosses the antimeridian",
		http.StatusBadRequest,
	)

	ErrNotEnoughGeoEntities = New(
		"NOT_ENOUGH_GEO_ENTITIES",
		"Too few geo entities in working area",
		http.StatusUnprocessableEntity,
	)

	ErrInterrupted = New(
		"INTERRUPTED",
		"Exercise construction interrupted",
		http.StatusServiceUnavailable,
	)

	ErrSupplier = New(
		"SUPPLIER_ERROR",
		"Raw map data acquisition failed",
		http.StatusBadGateway,
	)
)

// Ошибки викторины
var (
	ErrContentGeneration = New(
		"CONTENT_GENERATION",
		"Not enough content to create quiz",
		http.StatusConflict,
	)

	ErrQuizNotFinished = New(
		"QUIZ_NOT_FINISHED",
		"Running quiz has unanswered questions",
		http.StatusConflict,
	)

	ErrQuizNotFound = New(
		"QUIZ_NOT_FOUND",
		"No running quiz",
		http.StatusNotFound,
	)

	ErrQuestionNotFound = New(
		"QUESTION_NOT_FOUND",
		"Question not found in running quiz",
		http.StatusNotFound,
	)
)

var (
	// ErrInvariantViolation - ошибка программиста, не повторяется
	ErrInvariantViolation = New(
		"INVARIANT_VIOLATION",
		"Internal invariant violated",
		http.StatusInternalServerError,
	)

	ErrExerciseNotFound = New(
		"EXERCISE_NOT_FOUND",
		"Exercise not found",
		http.StatusNotFound,
	)

	ErrGeoEntityNotFound = New(
		"GEO_ENTITY_NOT_FOUND",
		"Geo entity not found",
		http.StatusNotFound,
	)

	ErrJobNotFound = New(
		"JOB_NOT_FOUND",
		"Build job not found",
		http.StatusNotFound,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
