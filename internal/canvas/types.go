package canvas

// Remote entities are immutable value objects deserialized from Canvas JSON
// responses. Identity is the service-assigned id; updates go through the
// dedicated write operations, never through client-side mutation.

// EnrollmentRole values Canvas reports for a course enrollment.
const (
	RoleTA       = "TaEnrollment"
	RoleStudent  = "StudentEnrollment"
	RoleTeacher  = "TeacherEnrollment"
	RoleDesigner = "DesignerEnrollment"
	RoleObserver = "ObserverEnrollment"
)

// Course is one Canvas course with its term and enrollment context.
type Course struct {
	ID                     int64        `json:"id"`
	UUID                   string       `json:"uuid"`
	Name                   string       `json:"name"`
	CourseCode             string       `json:"course_code"`
	Enrollments            []Enrollment `json:"enrollments"`
	Teachers               []Teacher    `json:"teachers"`
	Term                   Term         `json:"term"`
	AccessRestrictedByDate bool         `json:"access_restricted_by_date"`
}

// IsAccessRestricted reports whether the course is closed for the caller.
// Restricted courses carry no usable data and are filtered from listings.
func (c *Course) IsAccessRestricted() bool {
	return c.AccessRestrictedByDate
}

type Term struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	StartAt       *string `json:"start_at"`
	EndAt         *string `json:"end_at"`
	CreatedAt     *string `json:"created_at"`
	WorkflowState string  `json:"workflow_state"`
}

type Enrollment struct {
	Type            string `json:"type"`
	Role            string `json:"role"`
	RoleID          int64  `json:"role_id"`
	UserID          int64  `json:"user_id"`
	EnrollmentState string `json:"enrollment_state"`
}

type Teacher struct {
	ID             int64  `json:"id"`
	AnonymousID    string `json:"anonymous_id"`
	DisplayName    string `json:"display_name"`
	AvatarImageURL string `json:"avatar_image_url"`
	HTMLURL        string `json:"html_url"`
}

// User is a Canvas user (student, TA or teacher).
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CreatedAt    string `json:"created_at"`
	SortableName string `json:"sortable_name"`
	ShortName    string `json:"short_name"`
	LoginID      string `json:"login_id"`
	Email        string `json:"email"`
}

// File is one course file. URL is the pre-authenticated download location.
type File struct {
	ID          int64  `json:"id"`
	UUID        string `json:"uuid"`
	FolderID    int64  `json:"folder_id"`
	URL         string `json:"url"`
	DisplayName string `json:"display_name"`
	Filename    string `json:"filename"`
	ContentType string `json:"content-type"`
	MimeClass   string `json:"mime_class"`
	Locked      bool   `json:"locked"`
	Size        int64  `json:"size"`
}

type Folder struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	FullName       string `json:"full_name"`
	ParentFolderID *int64 `json:"parent_folder_id"`
	Locked         bool   `json:"locked"`
	FoldersURL     string `json:"folders_url"`
	FilesURL       string `json:"files_url"`
	FilesCount     int64  `json:"files_count"`
	FoldersCount   int64  `json:"folders_count"`
}

// Colors maps asset strings ("course_12345") to the user's custom colors.
type Colors struct {
	CustomColors map[string]string `json:"custom_colors"`
}

type Assignment struct {
	ID                      int64                `json:"id"`
	CourseID                int64                `json:"course_id"`
	Name                    string               `json:"name"`
	Description             *string              `json:"description"`
	HTMLURL                 string               `json:"html_url"`
	NeedsGradingCount       *int64               `json:"needs_grading_count"`
	DueAt                   *string              `json:"due_at"`
	UnlockAt                *string              `json:"unlock_at"`
	LockAt                  *string              `json:"lock_at"`
	PointsPossible          *float64             `json:"points_possible"`
	SubmissionTypes         []string             `json:"submission_types"`
	AllowedExtensions       []string             `json:"allowed_extensions"`
	Published               bool                 `json:"published"`
	HasSubmittedSubmissions bool                 `json:"has_submitted_submissions"`
	Submission              *Submission          `json:"submission"`
	Overrides               []AssignmentOverride `json:"overrides"`
	AllDates                []AssignmentDate     `json:"all_dates"`
}

type AssignmentDate struct {
	ID       int64   `json:"id"`
	Base     bool    `json:"base"`
	Title    string  `json:"title"`
	DueAt    *string `json:"due_at"`
	UnlockAt *string `json:"unlock_at"`
	LockAt   *string `json:"lock_at"`
}

type AssignmentOverride struct {
	ID           int64   `json:"id"`
	AssignmentID int64   `json:"assignment_id"`
	StudentIDs   []int64 `json:"student_ids"`
	Title        string  `json:"title"`
	DueAt        *string `json:"due_at"`
	UnlockAt     *string `json:"unlock_at"`
	LockAt       *string `json:"lock_at"`
	AllDay       bool    `json:"all_day"`
	AllDayDate   string  `json:"all_day_date"`
}

type Submission struct {
	ID                 int64               `json:"id"`
	AssignmentID       int64               `json:"assignment_id"`
	UserID             int64               `json:"user_id"`
	Grade              *string             `json:"grade"`
	SubmittedAt        *string             `json:"submitted_at"`
	Late               bool                `json:"late"`
	WorkflowState      string              `json:"workflow_state"`
	Attachments        []Attachment        `json:"attachments"`
	SubmissionComments []SubmissionComment `json:"submission_comments"`
}

type Attachment struct {
	ID          int64   `json:"id"`
	UUID        string  `json:"uuid"`
	FolderID    int64   `json:"folder_id"`
	DisplayName string  `json:"display_name"`
	Filename    string  `json:"filename"`
	ContentType string  `json:"content-type"`
	URL         string  `json:"url"`
	Size        int64   `json:"size"`
	Locked      bool    `json:"locked"`
	MimeClass   string  `json:"mime_class"`
	PreviewURL  string  `json:"preview_url"`
	Grade       *string `json:"grade"`
	Late        bool    `json:"late"`
}

type SubmissionComment struct {
	ID         int64  `json:"id"`
	Comment    string `json:"comment"`
	AuthorID   int64  `json:"author_id"`
	AuthorName string `json:"author_name"`
	CreatedAt  string `json:"created_at"`
}

// CalendarEvent is one dated assignment entry from the calendar feed.
type CalendarEvent struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	WorkflowState  string     `json:"workflow_state"`
	Assignment     Assignment `json:"assignment"`
	HTMLURL        string     `json:"html_url"`
	StartAt        *string    `json:"start_at"`
	EndAt          *string    `json:"end_at"`
	ContextCode    string     `json:"context_code"`
	ContextName    string     `json:"context_name"`
	URL            string     `json:"url"`
	ImportantDates bool       `json:"important_dates"`
}
