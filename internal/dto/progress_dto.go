package dto

// KPIResponse carries current-window metrics plus the percent change against
// the immediately preceding window of equal length.
type KPIResponse struct {
	TotalApplications          int64 `json:"totalApplications"`
	TotalApplicationsChange    int   `json:"totalApplicationsChange"`
	InterviewsScheduled        int64 `json:"interviewsScheduled"`
	InterviewsScheduledChange  int   `json:"interviewsScheduledChange"`
	OffersReceived             int64 `json:"offersReceived"`
	OffersReceivedChange       int   `json:"offersReceivedChange"`
	Rejections                 int64 `json:"rejections"`
	RejectionsChange           int   `json:"rejectionsChange"`
}

type DateCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type TimelineEntry struct {
	Date          string `json:"date"`
	Event         string `json:"event"`
	ApplicationID string `json:"applicationId"`
	JobTitle      string `json:"jobTitle"`
	CompanyName   string `json:"companyName"`
}

type ChartsResponse struct {
	ApplicationsOverTime []DateCount      `json:"applicationsOverTime"`
	StatusDistribution   map[string]int64 `json:"statusDistribution"`
	Timeline             []TimelineEntry  `json:"timeline"`
}

type ActivityEntry struct {
	ID            string `json:"id"`
	Type          string `json:"type"`
	ApplicationID string `json:"applicationId"`
	JobTitle      string `json:"jobTitle"`
	CompanyName   string `json:"companyName"`
	Description   string `json:"description"`
	Timestamp     string `json:"timestamp"`
}

type ActivityResponse struct {
	Activities []ActivityEntry `json:"activities"`
}

type ChartSlice struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

// ProgressSummary is the simple status-bucketed overview.
type ProgressSummary struct {
	Applications int64        `json:"applications"`
	Interviews   int64        `json:"interviews"`
	Offers       int64        `json:"offers"`
	Rejections   int64        `json:"rejections"`
	ChartData    []ChartSlice `json:"chartData"`
}

type DashboardStats struct {
	TotalApplications   int64 `json:"totalApplications"`
	InterviewsScheduled int64 `json:"interviewsScheduled"`
	OffersReceived      int64 `json:"offersReceived"`
}
