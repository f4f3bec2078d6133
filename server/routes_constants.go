package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteHome = "/"

	// Auth Routes
	RouteLogin    = "/login"
	RouteRegister = "/register"
	RouteLogout   = "/logout"

	// Dashboard Routes
	RouteDashboard        = "/dashboard"
	RouteDashboardAccount = "/dashboard/account"
	RouteDashboardClasses = "/dashboard/classes"
	RouteDashboardAssign  = "/dashboard/assign"

	// Class Routes
	RouteClassSchedule     = "/class-schedule"
	RouteClassScheduleBook = "/class-schedule/book"
	RouteClasses           = "/classes"

	// Member Routes
	RouteMemberList   = "/MemberList"
	RouteMemberUpdate = "/MemberList/{id}"
	RouteMemberDelete = "/MemberList/{id}/delete"

	// Workout and Progress Routes
	RouteCreateWorkout   = "/createWorkout"
	RouteProgress        = "/progress"
	RouteProgressTracker = "/progress-tracker"
	RouteProgressUpdate  = "/progress/{id}"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
	RouteStaticJS  = "/js/{file}"
)
