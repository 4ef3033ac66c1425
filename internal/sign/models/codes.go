package models

// FailureCode is the machine-readable reason a sign attempt did not start.
type FailureCode string

const (
	CodeEmptyListOfQuotes          FailureCode = "EMPTY_LIST_OF_QUOTES"
	CodeQuotesCanNotBeBundled      FailureCode = "QUOTES_CAN_NOT_BE_BUNDLED"
	CodeSingleQuoteCannotBeAlone   FailureCode = "SINGLE_QUOTE_CANNOT_BE_SIGNED_ALONE"
	CodeTargetURLNotProvided       FailureCode = "TARGET_URL_NOT_PROVIDED"
	CodeNoMemberIDOnQuote          FailureCode = "NO_MEMBER_ID_ON_QUOTE"
	CodeDifferentMemberID          FailureCode = "DIFFERENT_MEMBER_ID_ON_QUOTE_AND_SIGN_REQUEST"
	CodeMemberAlreadySigned        FailureCode = "MEMBER_IS_ALREADY_SIGNED"
	CodeQuoteExpired               FailureCode = "MEMBER_QUOTE_HAS_EXPIRED"
	CodeMemberHasExistingInsurance FailureCode = "MEMBER_HAS_EXISTING_INSURANCE"
	CodeQuoteNotSignable           FailureCode = "QUOTE_NOT_SIGNABLE"
	CodePersonalInfoNotMatching    FailureCode = "PERSONAL_INFO_NOT_MATCHING"
	CodeEmptyAuthToken             FailureCode = "EMPTY_AUTH_TOKEN_FROM_BANK_ID"
	CodeEmptyRedirectURL           FailureCode = "EMPTY_REDIRECT_URL_FROM_BANK_ID"
	CodeSignFailed                 FailureCode = "SIGN_FAILED"
)

var defaultMessages = map[FailureCode]string{
	CodeEmptyListOfQuotes:          "no quotes to sign",
	CodeQuotesCanNotBeBundled:      "quotes can not be signed together",
	CodeSingleQuoteCannotBeAlone:   "quote can not be signed on its own",
	CodeTargetURLNotProvided:       "success and fail urls are required",
	CodeNoMemberIDOnQuote:          "quote has no member",
	CodeDifferentMemberID:          "quote belongs to another member",
	CodeMemberAlreadySigned:        "member has already signed",
	CodeQuoteExpired:               "quote has expired",
	CodeMemberHasExistingInsurance: "quote is already signed",
	CodeQuoteNotSignable:           "quote is not ready to be signed",
	CodePersonalInfoNotMatching:    "personal information differs between quotes",
	CodeEmptyAuthToken:             "bank id did not return an auto start token",
	CodeEmptyRedirectURL:           "bank id did not return a redirect url",
	CodeSignFailed:                 "could not start signing",
}

func (c FailureCode) DefaultMessage() string {
	if msg, ok := defaultMessages[c]; ok {
		return msg
	}
	return string(c)
}
