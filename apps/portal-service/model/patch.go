package model

import "time"

// 各类型的部分更新结构。只有非nil字段会写入数据库，
// _id 和 createdAt 不在其中，updatedAt 由DAO刷新。

// BlogPatch 博客更新
type BlogPatch struct {
	Title     *string  `json:"title" form:"title" bson:"title,omitempty" validate:"omitnil,min=1"`
	Excerpt   *string  `json:"excerpt" form:"excerpt" bson:"excerpt,omitempty" validate:"omitnil,min=1"`
	Content   *string  `json:"content" form:"content" bson:"content,omitempty" validate:"omitnil,min=1"`
	Author    *string  `json:"author" form:"author" bson:"author,omitempty" validate:"omitnil,min=1"`
	Category  *string  `json:"category" form:"category" bson:"category,omitempty" validate:"omitnil,blog_category"`
	Image     *string  `json:"image" form:"image" bson:"image,omitempty" validate:"omitnil,min=1"`
	Video     *string  `json:"video" form:"video" bson:"video,omitempty"`
	Tags      *TagList `json:"tags" form:"-" bson:"tags,omitempty"`
	Published *bool    `json:"published" form:"published" bson:"published,omitempty"`
	Featured  *bool    `json:"featured" form:"featured" bson:"featured,omitempty"`
}

// Normalize 去除首尾空白
func (p *BlogPatch) Normalize() {
	trimPtr(p.Title, p.Excerpt, p.Content, p.Author, p.Category, p.Image, p.Video)
	if p.Tags != nil {
		tags := p.Tags.Normalize()
		p.Tags = &tags
	}
}

// EventPatch 活动更新
type EventPatch struct {
	Title            *string    `json:"title" form:"title" bson:"title,omitempty" validate:"omitnil,min=1"`
	Description      *string    `json:"description" form:"description" bson:"description,omitempty" validate:"omitnil,min=1"`
	ShortDescription *string    `json:"shortDescription" form:"shortDescription" bson:"shortDescription,omitempty" validate:"omitnil,min=1"`
	DateText         *string    `json:"date" form:"date" bson:"-" validate:"omitnil,isodate"`
	Date             *time.Time `json:"-" form:"-" bson:"date,omitempty"`
	Time             *string    `json:"time" form:"time" bson:"time,omitempty" validate:"omitnil,min=1"`
	Location         *string    `json:"location" form:"location" bson:"location,omitempty" validate:"omitnil,min=1"`
	Image            *string    `json:"image" form:"image" bson:"image,omitempty" validate:"omitnil,min=1"`
	Capacity         *int       `json:"capacity" form:"capacity" bson:"capacity,omitempty" validate:"omitnil,min=1"`
	Price            *float64   `json:"price" form:"price" bson:"price,omitempty" validate:"omitnil,min=0"`
	Category         *string    `json:"category" form:"category" bson:"category,omitempty" validate:"omitnil,event_category"`
	Organizer        *string    `json:"organizer" form:"organizer" bson:"organizer,omitempty" validate:"omitnil,min=1"`
	ContactEmail     *string    `json:"contactEmail" form:"contactEmail" bson:"contactEmail,omitempty" validate:"omitnil,email"`
	Featured         *bool      `json:"featured" form:"featured" bson:"featured,omitempty"`
	Published        *bool      `json:"published" form:"published" bson:"published,omitempty"`
	Tags             *TagList   `json:"tags" form:"-" bson:"tags,omitempty"`
}

// Normalize 去除首尾空白
func (p *EventPatch) Normalize() {
	trimPtr(p.Title, p.Description, p.ShortDescription, p.DateText, p.Time, p.Location,
		p.Image, p.Category, p.Organizer, p.ContactEmail)
	if p.Tags != nil {
		tags := p.Tags.Normalize()
		p.Tags = &tags
	}
}

// JobPatch 职位更新
type JobPatch struct {
	Title                   *string    `json:"title" bson:"title,omitempty" validate:"omitnil,min=1"`
	Company                 *string    `json:"company" bson:"company,omitempty" validate:"omitnil,min=1"`
	Location                *string    `json:"location" bson:"location,omitempty" validate:"omitnil,min=1"`
	Description             *string    `json:"description" bson:"description,omitempty" validate:"omitnil,min=1"`
	Requirements            *string    `json:"requirements" bson:"requirements,omitempty" validate:"omitnil,min=1"`
	Salary                  *string    `json:"salary" bson:"salary,omitempty" validate:"omitnil,min=1"`
	Type                    *string    `json:"type" bson:"type,omitempty" validate:"omitnil,job_type"`
	Category                *string    `json:"category" bson:"category,omitempty" validate:"omitnil,job_category"`
	ApplicationDeadlineText *string    `json:"applicationDeadline" bson:"-" validate:"omitnil,isodate"`
	ApplicationDeadline     *time.Time `json:"-" bson:"applicationDeadline,omitempty"`
	ContactEmail            *string    `json:"contactEmail" bson:"contactEmail,omitempty" validate:"omitnil,email"`
	Image                   *string    `json:"image" bson:"image,omitempty"`
	Featured                *bool      `json:"featured" bson:"featured,omitempty"`
	Published               *bool      `json:"published" bson:"published,omitempty"`
	Tags                    *TagList   `json:"tags" bson:"tags,omitempty"`
}

// Normalize 去除首尾空白
func (p *JobPatch) Normalize() {
	trimPtr(p.Title, p.Company, p.Location, p.Description, p.Requirements, p.Salary, p.Type,
		p.Category, p.ApplicationDeadlineText, p.ContactEmail, p.Image)
	if p.Tags != nil {
		tags := p.Tags.Normalize()
		p.Tags = &tags
	}
}

// SlidePatch 轮播图更新
type SlidePatch struct {
	Title       *string `json:"title" form:"title" bson:"title,omitempty" validate:"omitnil,min=1"`
	Image       *string `json:"image" form:"image" bson:"image,omitempty" validate:"omitnil,min=1"`
	AltText     *string `json:"altText" form:"altText" bson:"altText,omitempty" validate:"omitnil,min=1"`
	Link        *string `json:"link" form:"link" bson:"link,omitempty"`
	Order       *int    `json:"order" form:"order" bson:"order,omitempty"`
	Active      *bool   `json:"active" form:"active" bson:"active,omitempty"`
	Description *string `json:"description" form:"description" bson:"description,omitempty"`
}

// Normalize 去除首尾空白
func (p *SlidePatch) Normalize() {
	trimPtr(p.Title, p.Image, p.AltText, p.Link, p.Description)
}

// CommentPatch 评论更新（审核或修改内容），不允许改变所属内容
type CommentPatch struct {
	Content  *string `json:"content" bson:"content,omitempty" validate:"omitnil,min=1"`
	Author   *string `json:"author" bson:"author,omitempty" validate:"omitnil,min=1"`
	Email    *string `json:"email" bson:"email,omitempty" validate:"omitnil,email"`
	Approved *bool   `json:"approved" bson:"approved,omitempty"`
}

// Normalize 去除首尾空白
func (p *CommentPatch) Normalize() {
	trimPtr(p.Content, p.Author, p.Email)
}
