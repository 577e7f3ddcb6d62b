// Package jobs provides scheduled background tasks for the courier
// management service.
//
// AssignmentRetryJob re-attempts courier assignment for deliveries that
// arrived while the fleet was empty. The event consumer parks such
// deliveries on the AssignmentRetryQueue instead of spinning on broker
// redelivery; the job drains the queue every second (cron expression
// "* * * * * *" via github.com/robfig/cron/v3) and drops a delivery with an
// error log once its attempts are exhausted.
package jobs
