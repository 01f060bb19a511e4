package content

type CreateExperienceRequest struct {
	Company          string   `json:"company" binding:"required,max=256"`
	Role             string   `json:"role" binding:"required,max=256"`
	Duration         string   `json:"duration" binding:"omitempty,max=128"`
	Responsibilities []string `json:"responsibilities"`
}

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required,max=256"`
	Description string `json:"description"`
	Link        string `json:"link" binding:"omitempty,max=512"`
}

// CreateCertificationRequest is bound from the multipart form; the optional image travels separately.
type CreateCertificationRequest struct {
	Title        string `form:"title" json:"title" binding:"required,max=512"`
	Organization string `form:"organization" json:"organization" binding:"required,max=256"`
	Year         string `form:"year" json:"year" binding:"required,max=32"`
}

func NewExperienceFromRequest(req CreateExperienceRequest) Experience {
	responsibilities := req.Responsibilities
	if responsibilities == nil {
		responsibilities = []string{}
	}

	return Experience{
		Company:          req.Company,
		Role:             req.Role,
		Duration:         req.Duration,
		Responsibilities: responsibilities,
	}
}

func NewProjectFromRequest(req CreateProjectRequest) Project {
	return Project{
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
	}
}

// NewCertificationFromRequest builds the record; imageFile is the stored upload name or "".
func NewCertificationFromRequest(req CreateCertificationRequest, imageFile string) Certification {
	return Certification{
		Title:        req.Title,
		Organization: req.Organization,
		Year:         req.Year,
		ImageFile:    imageFile,
	}
}
