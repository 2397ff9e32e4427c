package handlers

import (
	"context"

	"cleancity/internal/middleware"
)

type messageKey string

const (
	msgInvalidPayload     messageKey = "invalid_payload"
	msgRequiredFields     messageKey = "required_fields"
	msgCategoryInvalid    messageKey = "category_invalid"
	msgStatusInvalid      messageKey = "status_invalid"
	msgAmountInvalid      messageKey = "amount_invalid"
	msgAmountPositive     messageKey = "amount_positive"
	msgLoginRequired      messageKey = "login_required"
	msgNotOwner           messageKey = "not_owner"
	msgIssueNotFound      messageKey = "issue_not_found"
	msgIssuesLoadFailed   messageKey = "issues_load_failed"
	msgContribsLoadFailed messageKey = "contributions_load_failed"
	msgSubmitFailed       messageKey = "submit_failed"
)

// catalog holds the user-facing copy per locale. The Bengali strings mirror
// the copy the community site shows its members.
var catalog = map[string]map[messageKey]string{
	"en": {
		msgInvalidPayload:     "Invalid request payload.",
		msgRequiredFields:     "Title, location and description are required.",
		msgCategoryInvalid:    "Unknown category.",
		msgStatusInvalid:      "Status must be ongoing or ended.",
		msgAmountInvalid:      "Valid amount is required.",
		msgAmountPositive:     "Amount must be greater than zero.",
		msgLoginRequired:      "You must be logged in to do this.",
		msgNotOwner:           "Only the issue owner may change it.",
		msgIssueNotFound:      "Issue not found.",
		msgIssuesLoadFailed:   "Unable to load issues. Try again later.",
		msgContribsLoadFailed: "Unable to load contributions. Try again later.",
		msgSubmitFailed:       "Submission failed. Try again later.",
	},
	"bn": {
		msgInvalidPayload:     "অনুরোধটি বোঝা যায়নি।",
		msgRequiredFields:     "শিরোনাম, লোকেশন ও বিবরণ আবশ্যক।",
		msgCategoryInvalid:    "অজানা ক্যাটাগরি।",
		msgStatusInvalid:      "স্ট্যাটাস ongoing বা ended হতে হবে।",
		msgAmountInvalid:      "সঠিক পরিমাণ লিখুন।",
		msgAmountPositive:     "পরিমাণ শূন্যের বেশি হতে হবে।",
		msgLoginRequired:      "এই কাজের জন্য লগইন করতে হবে।",
		msgNotOwner:           "শুধু ইস্যুর মালিক এটি পরিবর্তন করতে পারবেন।",
		msgIssueNotFound:      "ইস্যুটি পাওয়া যায়নি।",
		msgIssuesLoadFailed:   "ইস্যু লোড করা যায়নি। পরে আবার চেষ্টা করুন।",
		msgContribsLoadFailed: "কন্ট্রিবিউশন লোড করা যায়নি। সার্ভার চেক করো।",
		msgSubmitFailed:       "জমা দেওয়া যায়নি। পরে আবার চেষ্টা করুন।",
	},
}

func localize(ctx context.Context, key messageKey) string {
	locale := middleware.LocaleFromContext(ctx)
	if msgs, ok := catalog[locale]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	return catalog["en"][key]
}
