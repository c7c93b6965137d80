package cloudagents

// SynchronizationState is the coarse state of a remote synchronization job.
// Values mirror the Cloud Agents contract and must not be renumbered.
type SynchronizationState int

const (
	// SyncStateNewAccount means the account was just created and never synchronized
	SyncStateNewAccount SynchronizationState = iota
	// SyncStateCreated means a synchronization job was created
	SyncStateCreated
	// SyncStateRunning means the agent is collecting documents
	SyncStateRunning
	// SyncStateAgentFailed means the agent failed to collect
	SyncStateAgentFailed
	// SyncStateDelivering means documents are being delivered
	SyncStateDelivering
	// SyncStatePendingAcknowledgement means delivery awaits an acknowledgement
	SyncStatePendingAcknowledgement
	// SyncStateCompleted means the synchronization completed
	SyncStateCompleted
	// SyncStateReportFailed means the final report could not be produced
	SyncStateReportFailed
)

var synchronizationStateNames = map[SynchronizationState]string{
	SyncStateNewAccount:             "NewAccount",
	SyncStateCreated:                "Created",
	SyncStateRunning:                "Running",
	SyncStateAgentFailed:            "AgentFailed",
	SyncStateDelivering:             "Delivering",
	SyncStatePendingAcknowledgement: "PendingAcknowledgement",
	SyncStateCompleted:              "Completed",
	SyncStateReportFailed:           "ReportFailed",
}

// String returns the contract name of the state, or "Unknown"
func (s SynchronizationState) String() string {
	if name, ok := synchronizationStateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Terminal reports whether the synchronization has stopped progressing.
// AgentFailed is not terminal: the job still moves on to ReportFailed.
func (s SynchronizationState) Terminal() bool {
	switch s {
	case SyncStatePendingAcknowledgement, SyncStateCompleted, SyncStateReportFailed:
		return true
	}
	return false
}

// SynchronizationStates lists every known state in code order
func SynchronizationStates() []SynchronizationState {
	states := make([]SynchronizationState, 0, len(synchronizationStateNames))
	for s := SyncStateNewAccount; s <= SyncStateReportFailed; s++ {
		states = append(states, s)
	}
	return states
}

// SynchronizationStateDetail explains why a synchronization is in its
// current state. Codes start at 1.
type SynchronizationStateDetail int

const (
	// SyncDetailNewAccount means the account has not been synchronized yet
	SyncDetailNewAccount SynchronizationStateDetail = iota + 1
	// SyncDetailCompleted means documents were collected
	SyncDetailCompleted
	// SyncDetailCompletedNothingToDownload means the website had no documents
	SyncDetailCompletedNothingToDownload
	// SyncDetailCompletedNothingNewToDownload means no document was new since the last synchronization
	SyncDetailCompletedNothingNewToDownload
	// SyncDetailCompletedWithMissingDocs means some documents could not be collected
	SyncDetailCompletedWithMissingDocs
	// SyncDetailCompletedWithErrors means collection finished with errors
	SyncDetailCompletedWithErrors
	// SyncDetailWrongCredentials means the website rejected the account credentials
	SyncDetailWrongCredentials
	// SyncDetailUnexpectedAccountData means the website returned data the agent did not expect
	SyncDetailUnexpectedAccountData
	// SyncDetailScheduled means the synchronization is queued
	SyncDetailScheduled
	// SyncDetailPending means the synchronization is waiting to start
	SyncDetailPending
	// SyncDetailInProgress means the agent is running
	SyncDetailInProgress
	// SyncDetailDematerialisationNeeded means paperless billing must be enabled on the website
	SyncDetailDematerialisationNeeded
	// SyncDetailCheckAccount means the customer must check the account on the website
	SyncDetailCheckAccount
	// SyncDetailAccountBlocked means the website blocked the account
	SyncDetailAccountBlocked
	// SyncDetailAdditionalAuthenticationRequired means an MFA code is expected, see SendMFACode
	SyncDetailAdditionalAuthenticationRequired
	// SyncDetailLoginPageChanged means the website login page changed
	SyncDetailLoginPageChanged
	// SyncDetailWelcomePageChanged means the website welcome page changed
	SyncDetailWelcomePageChanged
	// SyncDetailWebsiteInMaintenance means the website is in maintenance
	SyncDetailWebsiteInMaintenance
	// SyncDetailWebsiteChanged means the website layout changed
	SyncDetailWebsiteChanged
	// SyncDetailResetPasswordWarning means the website asks for a password reset
	SyncDetailResetPasswordWarning
	// SyncDetailResetPasswordRequired means the password must be reset before collecting
	SyncDetailResetPasswordRequired
	// SyncDetailServerUnavailable means the website did not respond
	SyncDetailServerUnavailable
	// SyncDetailPersonalNotification means the website shows a notice the customer must read
	SyncDetailPersonalNotification
	// SyncDetailTemporaryServerError means the website failed temporarily
	SyncDetailTemporaryServerError
	// SyncDetailCaptchaFound means the website asked for a captcha
	SyncDetailCaptchaFound
)

var synchronizationStateDetailNames = map[SynchronizationStateDetail]string{
	SyncDetailNewAccount:                       "NewAccount",
	SyncDetailCompleted:                        "Completed",
	SyncDetailCompletedNothingToDownload:       "CompletedNothingToDownload",
	SyncDetailCompletedNothingNewToDownload:    "CompletedNothingNewToDownload",
	SyncDetailCompletedWithMissingDocs:         "CompletedWithMissingDocs",
	SyncDetailCompletedWithErrors:              "CompletedWithErrors",
	SyncDetailWrongCredentials:                 "WrongCredentials",
	SyncDetailUnexpectedAccountData:            "UnexpectedAccountData",
	SyncDetailScheduled:                        "Scheduled",
	SyncDetailPending:                          "Pending",
	SyncDetailInProgress:                       "InProgress",
	SyncDetailDematerialisationNeeded:          "DematerialisationNeeded",
	SyncDetailCheckAccount:                     "CheckAccount",
	SyncDetailAccountBlocked:                   "AccountBlocked",
	SyncDetailAdditionalAuthenticationRequired: "AdditionalAuthenticationRequired",
	SyncDetailLoginPageChanged:                 "LoginPageChanged",
	SyncDetailWelcomePageChanged:               "WelcomePageChanged",
	SyncDetailWebsiteInMaintenance:             "WebsiteInMaintenance",
	SyncDetailWebsiteChanged:                   "WebsiteChanged",
	SyncDetailResetPasswordWarning:             "ResetPasswordWarning",
	SyncDetailResetPasswordRequired:            "ResetPasswordRequired",
	SyncDetailServerUnavailable:                "ServerUnavailable",
	SyncDetailPersonalNotification:             "PersonalNotification",
	SyncDetailTemporaryServerError:             "TemporaryServerError",
	SyncDetailCaptchaFound:                     "CaptchaFound",
}

// String returns the contract name of the detail, or "Unknown"
func (d SynchronizationStateDetail) String() string {
	if name, ok := synchronizationStateDetailNames[d]; ok {
		return name
	}
	return "Unknown"
}

// SynchronizationStateDetails lists every known detail in code order
func SynchronizationStateDetails() []SynchronizationStateDetail {
	details := make([]SynchronizationStateDetail, 0, len(synchronizationStateDetailNames))
	for d := SyncDetailNewAccount; d <= SyncDetailCaptchaFound; d++ {
		details = append(details, d)
	}
	return details
}
