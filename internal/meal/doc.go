// Package meal defines the meal periods served by the campus cafeterias and
// the clock policy that decides which period applies at a given instant.
//
// The policy works in Korea Standard Time (UTC+9) using a fixed offset. Korea
// does not observe daylight saving time, so no timezone database is needed.
//
// # Usage
//
//	p := meal.CurrentPeriod(time.Now())
//	fmt.Println(p, p.Label()) // "lunch 중식" before 13:30 KST
package meal
