package models

// LoginRequest is the body of POST /officers/login.
type LoginRequest struct {
	OfficerID string `json:"officer_id"`
	Password  string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	return firstError(
		requireText("officer_id", r.OfficerID),
		requireText("password", r.Password),
	)
}

// LoginResponse confirms a successful credential check. No token is issued.
type LoginResponse struct {
	OfficerID string `json:"officer_id"`
}

// SignupRequest is the body of POST /officers/signup.
type SignupRequest struct {
	OfficerID   string `json:"officer_id"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	OfficerRank string `json:"officer_rank"`
}

func (r *SignupRequest) Validate() error {
	return r.Officer().Validate()
}

// Officer converts the signup payload into the record to store.
func (r *SignupRequest) Officer() Officer {
	return Officer{
		OfficerID:   r.OfficerID,
		Password:    r.Password,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		OfficerRank: r.OfficerRank,
	}
}
